package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name"`
	Email       string         `json:"email" gorm:"unique"`
	Password    string         `json:"-"`
	PhoneNumber string         `json:"phoneNumber"`
	Role        int            `json:"role"` // 0: khách, 1: admin, 2: sub-label, 3: nghệ sĩ
	BrandID     *uint          `json:"brandId"`
	Brand       *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Genres      pq.StringArray `json:"genres" gorm:"type:text[]"` // Thể loại của nghệ sĩ
	Status      int            `json:"status"`
	IsVerified  bool           `json:"isVerified"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}
