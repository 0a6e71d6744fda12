package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTicketOrderRequest struct {
	EventID    uint   `json:"eventId" validate:"required"`
	BuyerName  string `json:"buyerName" validate:"required"`
	BuyerEmail string `json:"buyerEmail" validate:"required,email"`
	BuyerPhone string `json:"buyerPhone"`
}

type TicketOrderResponse struct {
	ID            uint            `json:"id"`
	EventID       uint            `json:"eventId"`
	Status        int             `json:"status"`
	PaymentLinkID string          `json:"paymentLinkId"`
	PaymentURL    string          `json:"paymentUrl,omitempty"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type VerifyTicketRequest struct {
	EventID         uint   `json:"eventId" validate:"required"`
	VerificationPin string `json:"verificationPin" validate:"required"`
	TicketCode      string `json:"ticketCode" validate:"required"`
}

type TicketResponse struct {
	ID         uint            `json:"id"`
	EventID    uint            `json:"eventId"`
	EventName  string          `json:"eventName,omitempty"`
	Status     int             `json:"status"`
	TicketCode string          `json:"ticketCode,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Fee        decimal.Decimal `json:"fee"`
	BuyerName  string          `json:"buyerName,omitempty"`
	BuyerEmail string          `json:"buyerEmail,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type ResendTicketRequest struct {
	TicketID uint `json:"ticketId" validate:"required"`
}

// SweepRequest quét thủ công các đơn treo; eventId 0 nghĩa là quét mọi
// sự kiện như đường chạy của cron
type SweepRequest struct {
	EventID     uint `json:"eventId"`
	OlderThanHr int  `json:"olderThanHr"`
}
