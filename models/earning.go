package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earning một khoản doanh thu đã ghi nhận cho release. Bản ghi bất biến
// sau khi tạo; ledger chỉ đọc, không bao giờ sửa.
type Earning struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ReleaseID   uint            `json:"releaseId" gorm:"not null;index"`
	Release     Release         `json:"release" gorm:"foreignKey:ReleaseID"`
	Category    int             `json:"category"` // 0: streaming, 1: sync, 2: download, 3: physical
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(18,2);not null"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
}
