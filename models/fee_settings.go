package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSettings cấu hình phí nền tảng theo từng brand. Không có bản ghi
// nghĩa là phí bằng 0, không phải lỗi.
type FeeSettings struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	BrandID              uint            `json:"brandId" gorm:"not null;uniqueIndex"`
	Brand                Brand           `json:"brand" gorm:"foreignKey:BrandID"`
	TransactionFixedFee  decimal.Decimal `json:"transactionFixedFee" gorm:"type:numeric(18,2)"`
	RevenuePercentageFee decimal.Decimal `json:"revenuePercentageFee" gorm:"type:numeric(7,6)"`
	FeeRevenueType       int             `json:"feeRevenueType"` // 0: gross, 1: net
	CreatedAt            time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Fee revenue type constants
const (
	FeeRevenueTypeGross = 0
	FeeRevenueTypeNet   = 1
)
