package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	BrandID         uint            `json:"brandId" gorm:"not null;index"`
	Brand           Brand           `json:"brand" gorm:"foreignKey:BrandID"`
	Name            string          `json:"name" gorm:"not null"`
	Venue           string          `json:"venue"`
	Date            time.Time       `json:"date"`
	VerificationPin string          `json:"-" gorm:"type:varchar(20)"` // PIN soát vé tại cửa
	TicketPrice     decimal.Decimal `json:"ticketPrice" gorm:"type:numeric(18,2)"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
