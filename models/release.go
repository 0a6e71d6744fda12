package models

import (
	"time"

	"github.com/lib/pq"
)

type Release struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	BrandID     uint           `json:"brandId" gorm:"not null;index"`
	Brand       Brand          `json:"brand" gorm:"foreignKey:BrandID"`
	Title       string         `json:"title" gorm:"not null"`
	Genres      pq.StringArray `json:"genres" gorm:"type:text[]"`
	CoverURL    string         `json:"coverUrl"` // Upload ảnh do collaborator bên ngoài xử lý
	Status      int            `json:"status"`   // 0: Draft, 1: For Submission, 2: Pending, 3: Live, 4: Taken Down
	ReleaseDate string         `json:"releaseDate"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	Splits      []RoyaltySplit `json:"splits,omitempty" gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE"`
}
