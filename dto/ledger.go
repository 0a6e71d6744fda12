package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSummary số dư hiện tại của một nghệ sĩ hoặc sub-label.
// Luôn tính lại từ các bản ghi earning/payment, không lưu trữ.
type BalanceSummary struct {
	SubjectID     uint            `json:"subjectId"`
	SubjectKind   string          `json:"subjectKind"`
	GrossEarnings decimal.Decimal `json:"grossEarnings"`
	Fees          decimal.Decimal `json:"fees"`
	Payments      decimal.Decimal `json:"payments"`
	Balance       decimal.Decimal `json:"balance"`
}

// StatementLine một dòng trên sao kê CSV: Date, Description, Amount, Fee
type StatementLine struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	HasFee      bool
}

type CreateEarningRequest struct {
	ReleaseID   uint            `json:"releaseId" validate:"required"`
	Category    int             `json:"category" validate:"gte=0,lte=3"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

type CreatePaymentRequest struct {
	RecipientID      uint            `json:"recipientId" validate:"required"`
	RecipientKind    string          `json:"recipientKind" validate:"oneof=artist sub_label"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessingFee    decimal.Decimal `json:"processingFee"`
	DatePaid         string          `json:"datePaid"`
	PaymentMethodRef string          `json:"paymentMethodRef"`
}

type FeeSettingsRequest struct {
	BrandID              uint            `json:"brandId" validate:"required"`
	TransactionFixedFee  decimal.Decimal `json:"transactionFixedFee"`
	RevenuePercentageFee decimal.Decimal `json:"revenuePercentageFee"`
	FeeRevenueType       int             `json:"feeRevenueType" validate:"gte=0,lte=1"`
}
