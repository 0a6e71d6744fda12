package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment một khoản đã chi trả cho nghệ sĩ hoặc sub-label. Bất biến sau
// khi tạo. ProcessingFee là dòng riêng trên ledger, không trừ vào gross.
type Payment struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	RecipientID      uint            `json:"recipientId" gorm:"not null;index"`
	RecipientKind    string          `json:"recipientKind" gorm:"type:varchar(20);not null"` // artist | sub_label
	Amount           decimal.Decimal `json:"amount" gorm:"type:numeric(18,2);not null"`
	ProcessingFee    decimal.Decimal `json:"processingFee" gorm:"type:numeric(18,2)"`
	DatePaid         time.Time       `json:"datePaid"`
	PaymentMethodRef string          `json:"paymentMethodRef"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}
