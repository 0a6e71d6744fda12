package builders

import (
	"label/models"

	"github.com/shopspring/decimal"
)

// TicketBuilder giúp tạo vé theo từng bước
type TicketBuilder struct {
	ticket *models.Ticket
}

// NewTicketBuilder tạo instance mới của TicketBuilder
func NewTicketBuilder() *TicketBuilder {
	return &TicketBuilder{
		ticket: &models.Ticket{Status: models.TicketStatusNew},
	}
}

// WithEvent thêm sự kiện
func (b *TicketBuilder) WithEvent(eventID uint) *TicketBuilder {
	b.ticket.EventID = eventID
	return b
}

// WithBuyerInfo thêm thông tin người mua
func (b *TicketBuilder) WithBuyerInfo(buyerName, buyerEmail, buyerPhone string) *TicketBuilder {
	b.ticket.BuyerName = buyerName
	b.ticket.BuyerEmail = buyerEmail
	b.ticket.BuyerPhone = buyerPhone
	return b
}

// WithPrice thêm giá vé
func (b *TicketBuilder) WithPrice(price decimal.Decimal) *TicketBuilder {
	b.ticket.Price = price
	return b
}

// WithPaymentLink thêm payment link do gateway phát hành
func (b *TicketBuilder) WithPaymentLink(paymentLinkID string) *TicketBuilder {
	b.ticket.PaymentLinkID = paymentLinkID
	return b
}

// Build tạo vé hoàn chỉnh
func (b *TicketBuilder) Build() *models.Ticket {
	return b.ticket
}
