package services

import (
	"context"
	"time"

	"label/models"
	"label/services/logger"
)

// SweepResult kết quả một lần quét đơn treo
type SweepResult struct {
	Verified int `json:"verified"`
	Canceled int `json:"canceled"`
}

// SweepService quét các vé còn ở New quá hạn: hỏi lại gateway để bắc cầu
// cho các webhook bị mất, vé đã trả tiền đi theo đúng đường đối soát, vé
// chưa trả thì hủy. Chạy lại bao nhiêu lần cũng an toàn vì mọi chuyển
// trạng thái đều đi qua guard ở tầng lưu trữ.
type SweepService struct {
	Tickets    TicketRepository
	Gateway    PaymentGateway
	Reconciler *ReconcileService
	Logger     logger.Logger
}

func NewSweepService(tickets TicketRepository, gateway PaymentGateway,
	reconciler *ReconcileService, log logger.Logger) *SweepService {
	return &SweepService{
		Tickets:    tickets,
		Gateway:    gateway,
		Reconciler: reconciler,
		Logger:     log,
	}
}

// SweepAbandoned quét vé New tạo trước cutoff, lọc theo sự kiện nếu
// eventID khác 0. Mỗi vé xử lý độc lập nên hủy ngang ctx giữa chừng chỉ
// làm ít vé được xử lý hơn, không để lại trạng thái dở dang.
func (s *SweepService) SweepAbandoned(ctx context.Context, eventID uint, cutoff time.Time) (SweepResult, error) {
	tickets, err := s.Tickets.ListStaleNew(eventID, cutoff)
	if err != nil {
		return SweepResult{}, err
	}

	var result SweepResult
	for i := range tickets {
		if ctx.Err() != nil {
			s.Logger.Info("quét đơn treo dừng giữa chừng: %v", ctx.Err())
			return result, ctx.Err()
		}

		ticket := &tickets[i]
		checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		status, err := s.Gateway.CheckPaymentLink(checkCtx, ticket.PaymentLinkID)
		cancel()
		if err != nil {
			s.Logger.Error("hỏi lại gateway cho vé %d: %v", ticket.ID, err)
			continue
		}

		switch status {
		case LinkStatusPaid:
			// Webhook bị mất nhưng tiền đã chuyển: đi đúng đường đối soát
			outcome := s.Reconciler.Fulfill(ticket)
			if outcome == OutcomeFulfilled || outcome == OutcomeConfirmedDeliveryFailed {
				result.Verified++
			}
		case LinkStatusUnpaid:
			canceled, err := s.Tickets.Cancel(ticket.ID, models.TicketStatusNew)
			if err != nil {
				s.Logger.Error("hủy vé %d: %v", ticket.ID, err)
				continue
			}
			// Một webhook vừa xen vào thì câu UPDATE trượt guard, bỏ qua
			if canceled {
				result.Canceled++
			}
		case LinkStatusInconclusive:
			// Không kết luận được thì để yên, lần quét sau thử lại
			s.Logger.Debug("vé %d: gateway chưa trả lời dứt khoát", ticket.ID)
		}
	}

	return result, nil
}
