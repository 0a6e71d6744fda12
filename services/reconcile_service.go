package services

import (
	"sync/atomic"

	"label/dto"
	"label/errors"
	"label/models"
	"label/services/logger"
	"label/services/notification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReconcileOutcome kết quả xử lý một lần gateway gửi webhook
type ReconcileOutcome string

const (
	OutcomeFulfilled               ReconcileOutcome = "fulfilled"
	OutcomeConfirmedDeliveryFailed ReconcileOutcome = "confirmed_delivery_failed"
	OutcomeDuplicate               ReconcileOutcome = "duplicate"
	OutcomeTerminalNoop            ReconcileOutcome = "terminal_noop"
	OutcomeInvalidPayload          ReconcileOutcome = "invalid_payload"
	OutcomeUnhandledType           ReconcileOutcome = "unhandled_type"
	OutcomeCorrelationFailure      ReconcileOutcome = "correlation_failure"
	OutcomeError                   ReconcileOutcome = "error"
)

// ReconcileService đối soát webhook thanh toán thành vé đã gửi, đúng một
// lần cho mỗi thanh toán. Gateway gửi ít nhất một lần; mọi lần trùng là
// no-op được đếm lại, không phải lỗi.
type ReconcileService struct {
	DB       *gorm.DB
	Tickets  TicketRepository
	Mailer   Mailer
	Notifier notification.Service
	Logger   logger.Logger

	duplicateCount uint64
}

func NewReconcileService(db *gorm.DB, tickets TicketRepository, mailer Mailer,
	notifier notification.Service, log logger.Logger) *ReconcileService {
	return &ReconcileService{
		DB:       db,
		Tickets:  tickets,
		Mailer:   mailer,
		Notifier: notifier,
		Logger:   log,
	}
}

// DuplicateCount số lần webhook trùng đã ghi nhận, chỉ phục vụ giám sát
func (s *ReconcileService) DuplicateCount() uint64 {
	return atomic.LoadUint64(&s.duplicateCount)
}

// ProcessWebhook xử lý một lần gửi webhook. Không bao giờ trả lỗi ra cho
// gateway; mọi nhánh thất bại đều được ghi sổ và báo vận hành, HTTP layer
// luôn trả 200.
func (s *ReconcileService) ProcessWebhook(raw []byte) ReconcileOutcome {
	payload, kind := dto.ParseWebhookPayload(raw)

	switch kind {
	case dto.PayloadUnrecognized:
		s.recordEvent("", "", raw, OutcomeInvalidPayload)
		s.notify(string(errors.ErrCodeInvalidPayload),
			notification.NewWebhookFailureMessage(string(errors.ErrCodeInvalidPayload), "",
				"payload không đúng shape mong đợi").Build(), string(raw))
		return OutcomeInvalidPayload
	case dto.PayloadUnhandled:
		// Shape đúng nhưng không phải payment link; không đoán loại khác
		s.recordEvent(payload.GatewayEventID(), "", raw, OutcomeUnhandledType)
		s.notify(string(errors.ErrCodeInvalidPayload),
			notification.NewWebhookFailureMessage(string(errors.ErrCodeInvalidPayload), "",
				"loại correlation không được hỗ trợ: "+payload.Data.Attributes.Data.Type).Build(), string(raw))
		return OutcomeUnhandledType
	}

	linkID := payload.PaymentLinkID()
	ticket, err := s.Tickets.FindByPaymentLinkID(linkID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			s.recordEvent(payload.GatewayEventID(), linkID, raw, OutcomeCorrelationFailure)
			s.notify(string(errors.ErrCodeCorrelationFailure),
				notification.NewWebhookFailureMessage(string(errors.ErrCodeCorrelationFailure),
					linkID, "không có vé nào khớp payment link").Build(), string(raw))
			return OutcomeCorrelationFailure
		}
		s.Logger.Error("webhook link %s: %v", linkID, err)
		s.recordEvent(payload.GatewayEventID(), linkID, raw, OutcomeError)
		return OutcomeError
	}

	outcome := s.Fulfill(ticket)
	s.recordEvent(payload.GatewayEventID(), linkID, raw, outcome)
	return outcome
}

// Fulfill đưa một vé đã được thanh toán qua chuỗi New -> Payment Confirmed
// -> Sent. Sweeper dùng chung đường này nên webhook và quét không bao giờ
// đua nhau ngoài guard ở tầng lưu trữ.
func (s *ReconcileService) Fulfill(ticket *models.Ticket) ReconcileOutcome {
	// Kiểm tra idempotency trước khi làm bất cứ việc gì: đã xác nhận hoặc
	// đã gửi nghĩa là lần gửi trùng, không tính lại phí, không gửi lại mail
	switch ticket.Status {
	case models.TicketStatusPaymentConfirmed, models.TicketStatusSent:
		atomic.AddUint64(&s.duplicateCount, 1)
		s.Logger.Info("vé %d đã xử lý trước đó, bỏ qua lần gửi trùng", ticket.ID)
		return OutcomeDuplicate
	case models.TicketStatusCanceled:
		s.Logger.Info("vé %d đã hủy, bỏ qua webhook", ticket.ID)
		return OutcomeTerminalNoop
	}

	fee := s.ticketFee(ticket)
	confirmed, err := s.Tickets.ConfirmPayment(ticket.ID, fee)
	if err != nil {
		s.Logger.Error("xác nhận thanh toán vé %d: %v", ticket.ID, err)
		return OutcomeError
	}
	if !confirmed {
		// Một webhook trùng khác vừa thắng câu UPDATE; bên này là no-op
		atomic.AddUint64(&s.duplicateCount, 1)
		s.Logger.Info("vé %d đã được xác nhận bởi một lần gửi song song", ticket.ID)
		return OutcomeDuplicate
	}

	// Mã vé sinh đúng một lần; chạy lại bước gửi không đổi mã. Không gán
	// được mã thì vé đứng ở Payment Confirmed chờ gửi lại thủ công, không
	// bao giờ đi tiếp tới Sent với mã rỗng vì cổng soát vé khớp theo mã
	if ticket.TicketCode == "" {
		if err := s.Tickets.AssignTicketCode(ticket.ID, uuid.New().String()); err != nil {
			s.Logger.Error("gán mã vé %d: %v", ticket.ID, err)
			s.notify("TICKET_CODE_FAILED",
				notification.NewDeliveryStallMessage(ticket.ID, "không gán được mã vé").Build(), err.Error())
			return OutcomeConfirmedDeliveryFailed
		}
	}

	fresh, err := s.Tickets.FindByID(ticket.ID)
	if err != nil {
		s.Logger.Error("đọc lại vé %d: %v", ticket.ID, err)
		return OutcomeError
	}

	// Gửi mail thất bại thì vé đứng ở Payment Confirmed chờ gửi lại thủ
	// công, không bao giờ lùi về New vì tiền đã chuyển
	if err := s.Mailer.SendTicketEmail(fresh); err != nil {
		s.Logger.Error("gửi vé %d qua email: %v", fresh.ID, err)
		s.notify("MAIL_FAILED",
			notification.NewMailFailureMessage(fresh.ID, fresh.BuyerEmail).Build(), err.Error())
		return OutcomeConfirmedDeliveryFailed
	}

	sent, err := s.Tickets.MarkSent(fresh.ID)
	if err != nil {
		s.Logger.Error("đánh dấu đã gửi vé %d: %v", fresh.ID, err)
		return OutcomeError
	}
	if !sent {
		atomic.AddUint64(&s.duplicateCount, 1)
		return OutcomeDuplicate
	}
	return OutcomeFulfilled
}

// ResendTicket gửi lại email vé cho vé kẹt ở Payment Confirmed sau khi
// mail thất bại, thao tác thủ công của admin
func (s *ReconcileService) ResendTicket(ticketID uint) (ReconcileOutcome, error) {
	ticket, err := s.Tickets.FindByID(ticketID)
	if err != nil {
		return OutcomeError, err
	}
	if ticket.Status != models.TicketStatusPaymentConfirmed {
		return OutcomeTerminalNoop, errors.NewAppError(errors.ErrCodeInvalidTransition,
			"Vé không ở trạng thái chờ gửi lại", nil)
	}

	if ticket.TicketCode == "" {
		if err := s.Tickets.AssignTicketCode(ticket.ID, uuid.New().String()); err != nil {
			return OutcomeError, err
		}
		if ticket, err = s.Tickets.FindByID(ticketID); err != nil {
			return OutcomeError, err
		}
	}

	if err := s.Mailer.SendTicketEmail(ticket); err != nil {
		s.notify("MAIL_FAILED",
			notification.NewMailFailureMessage(ticket.ID, ticket.BuyerEmail).Build(), err.Error())
		return OutcomeConfirmedDeliveryFailed, errors.NewAppError(errors.ErrCodeInvalidOperation,
			"Gửi email vé thất bại", err)
	}

	sent, err := s.Tickets.MarkSent(ticket.ID)
	if err != nil {
		return OutcomeError, err
	}
	if !sent {
		return OutcomeDuplicate, nil
	}
	return OutcomeFulfilled, nil
}

// ticketFee tính phí nền tảng trên giá vé theo cấu hình brand của sự kiện.
// Cấu hình hỏng hạ về phí 0, không chặn xác nhận thanh toán.
func (s *ReconcileService) ticketFee(ticket *models.Ticket) decimal.Decimal {
	if s.DB == nil {
		return decimal.Zero
	}
	var event models.Event
	if err := s.DB.First(&event, ticket.EventID).Error; err != nil {
		return decimal.Zero
	}
	return brandPlatformFee(s.DB, event.BrandID, ticket.Price)
}

func (s *ReconcileService) recordEvent(gatewayEventID, paymentLinkID string, raw []byte, outcome ReconcileOutcome) {
	if s.DB == nil {
		return
	}
	record := models.WebhookEvent{
		GatewayEventID: gatewayEventID,
		PaymentLinkID:  paymentLinkID,
		Payload:        string(raw),
		Outcome:        string(outcome),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		s.Logger.Error("ghi sổ webhook event: %v", err)
	}
}

func (s *ReconcileService) notify(code string, message string, description string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(code, message, description); err != nil {
		s.Logger.Error("gửi thông báo vận hành: %v", err)
	}
}
