package controllers

import (
	"net/http"
	"strconv"
	"time"

	"label/builders"
	"label/config"
	"label/dto"
	"label/errors"
	"label/models"
	"label/response"
	"label/services"
	"label/validator"

	"github.com/gin-gonic/gin"
)

// TicketController gom các thao tác trên vé cần gateway và reconciler
type TicketController struct {
	Tickets    services.TicketRepository
	Gateway    services.PaymentGateway
	Reconciler *services.ReconcileService
	Sweeper    *services.SweepService
}

func NewTicketController(tickets services.TicketRepository, gateway services.PaymentGateway,
	reconciler *services.ReconcileService, sweeper *services.SweepService) *TicketController {
	return &TicketController{
		Tickets:    tickets,
		Gateway:    gateway,
		Reconciler: reconciler,
		Sweeper:    sweeper,
	}
}

// CreateTicketOrder tạo vé ở trạng thái New cùng payment link từ gateway.
// Người mua thanh toán qua link; webhook hoặc sweeper sẽ đưa vé đi tiếp.
func (tc *TicketController) CreateTicketOrder(c *gin.Context) {
	var input dto.CreateTicketOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response.ValidationError(c, "Dữ liệu đặt vé không hợp lệ")
		return
	}

	var event models.Event
	if err := config.DB.First(&event, input.EventID).Error; err != nil {
		response.NotFound(c)
		return
	}

	ticket := builders.NewTicketBuilder().
		WithEvent(event.ID).
		WithBuyerInfo(input.BuyerName, input.BuyerEmail, input.BuyerPhone).
		WithPrice(event.TicketPrice).
		Build()

	linkID, paymentURL, err := tc.Gateway.CreatePaymentLink(c.Request.Context(), ticket)
	if err != nil {
		response.BadRequest(c, "Không tạo được link thanh toán")
		return
	}
	ticket.PaymentLinkID = linkID

	if err := tc.Tickets.Create(ticket); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, dto.TicketOrderResponse{
		ID:            ticket.ID,
		EventID:       ticket.EventID,
		Status:        ticket.Status,
		PaymentLinkID: ticket.PaymentLinkID,
		PaymentURL:    paymentURL,
		Price:         ticket.Price,
		CreatedAt:     ticket.CreatedAt,
	})
}

// VerifyTicket soát vé tại cửa: đúng PIN của sự kiện và vé đã ở trạng
// thái Sent thì trả về vé, sai PIN trả 403, không thấy hoặc chưa gửi trả 404
func (tc *TicketController) VerifyTicket(c *gin.Context) {
	var input dto.VerifyTicketRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response.ValidationError(c, "Dữ liệu soát vé không hợp lệ")
		return
	}

	var event models.Event
	if err := config.DB.First(&event, input.EventID).Error; err != nil {
		response.NotFound(c)
		return
	}

	if event.VerificationPin != input.VerificationPin {
		response.Forbidden(c)
		return
	}

	var ticket models.Ticket
	if err := config.DB.Where("event_id = ? AND ticket_code = ? AND status = ?",
		input.EventID, input.TicketCode, models.TicketStatusSent).
		First(&ticket).Error; err != nil {
		response.NotFound(c)
		return
	}

	response.Success(c, dto.TicketResponse{
		ID:         ticket.ID,
		EventID:    ticket.EventID,
		EventName:  event.Name,
		Status:     ticket.Status,
		TicketCode: ticket.TicketCode,
		Price:      ticket.Price,
		Fee:        ticket.Fee,
		BuyerName:  ticket.BuyerName,
		BuyerEmail: ticket.BuyerEmail,
		CreatedAt:  ticket.CreatedAt,
		UpdatedAt:  ticket.UpdatedAt,
	})
}

func (tc *TicketController) GetTicketsByEvent(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "ID sự kiện không hợp lệ")
		return
	}

	var tickets []models.Ticket
	tx := config.DB.Where("event_id = ?", uint(eventID))
	if statusFilter := c.Query("status"); statusFilter != "" {
		status, err := strconv.Atoi(statusFilter)
		if err != nil {
			response.BadRequest(c, "Trạng thái không hợp lệ")
			return
		}
		tx = tx.Where("status = ?", status)
	}
	if err := tx.Order("created_at desc").Find(&tickets).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, tickets)
}

// ResendTicket gửi lại email vé cho vé kẹt ở Payment Confirmed
func (tc *TicketController) ResendTicket(c *gin.Context) {
	var input dto.ResendTicketRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	outcome, err := tc.Reconciler.ResendTicket(input.TicketID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			response.NotFound(c)
			return
		}
		if errors.HasCode(err, errors.ErrCodeInvalidTransition) {
			response.BadRequest(c, "Vé không ở trạng thái chờ gửi lại")
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, gin.H{"outcome": string(outcome)})
}

// SweepAbandonedOrders quét đơn treo theo yêu cầu của admin, cũng là
// đường chạy của cron job
func (tc *TicketController) SweepAbandonedOrders(c *gin.Context) {
	var input dto.SweepRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	olderThan := input.OlderThanHr
	if olderThan <= 0 {
		olderThan = 24
	}
	cutoff := time.Now().Add(-time.Duration(olderThan) * time.Hour)

	result, err := tc.Sweeper.SweepAbandoned(c.Request.Context(), input.EventID, cutoff)
	if err != nil {
		if c.Request.Context().Err() != nil {
			c.JSON(http.StatusRequestTimeout, gin.H{"code": 0, "mess": "Quét bị hủy giữa chừng"})
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, result)
}
