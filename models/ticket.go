package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket status constants
const (
	TicketStatusNew              = 0
	TicketStatusPaymentConfirmed = 1
	TicketStatusSent             = 2
	TicketStatusCanceled         = 3
)

// Ticket một vé tham dự sự kiện. Vòng đời chỉ do reconciler và sweeper
// điều khiển sau khi rời trạng thái New. PaymentLinkID do gateway phát
// hành, duy nhất trên mỗi vé; TicketCode chỉ gán một lần khi gửi vé.
type Ticket struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	EventID       uint            `json:"eventId" gorm:"not null;index"`
	Event         Event           `json:"event" gorm:"foreignKey:EventID"`
	Status        int             `json:"status"` // 0: New, 1: Payment Confirmed, 2: Sent, 3: Canceled
	PaymentLinkID string          `json:"paymentLinkId" gorm:"uniqueIndex;not null"`
	TicketCode    string          `json:"ticketCode" gorm:"type:varchar(40)"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(18,2)"`
	Fee           decimal.Decimal `json:"fee" gorm:"type:numeric(18,2)"` // Phí nền tảng ghi lúc xác nhận thanh toán
	BuyerName     string          `json:"buyerName,omitempty"`
	BuyerEmail    string          `json:"buyerEmail,omitempty"`
	BuyerPhone    string          `json:"buyerPhone,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
