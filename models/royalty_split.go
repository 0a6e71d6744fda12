package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoyaltySplit phần chia doanh thu của một nghệ sĩ trên một release.
// Tỷ lệ lưu trong khoảng [0,1] theo từng loại doanh thu; phần còn lại
// mặc nhiên thuộc về nhãn.
type RoyaltySplit struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	ReleaseID           uint            `json:"releaseId" gorm:"not null;uniqueIndex:idx_release_artist"`
	ArtistID            uint            `json:"artistId" gorm:"not null;uniqueIndex:idx_release_artist"`
	Artist              User            `json:"artist" gorm:"foreignKey:ArtistID"`
	StreamingPercentage decimal.Decimal `json:"streamingPercentage" gorm:"type:numeric(7,6)"`
	SyncPercentage      decimal.Decimal `json:"syncPercentage" gorm:"type:numeric(7,6)"`
	DownloadPercentage  decimal.Decimal `json:"downloadPercentage" gorm:"type:numeric(7,6)"`
	PhysicalPercentage  decimal.Decimal `json:"physicalPercentage" gorm:"type:numeric(7,6)"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CategoryPercentage trả về tỷ lệ của split theo loại doanh thu
func (s *RoyaltySplit) CategoryPercentage(category int) decimal.Decimal {
	switch category {
	case CategoryStreaming:
		return s.StreamingPercentage
	case CategorySync:
		return s.SyncPercentage
	case CategoryDownload:
		return s.DownloadPercentage
	case CategoryPhysical:
		return s.PhysicalPercentage
	default:
		return decimal.Zero
	}
}

// Royalty category constants
const (
	CategoryStreaming = 0
	CategorySync      = 1
	CategoryDownload  = 2
	CategoryPhysical  = 3
)

// CategoryNames tên hiển thị của các loại doanh thu
var CategoryNames = map[int]string{
	CategoryStreaming: "streaming",
	CategorySync:      "sync",
	CategoryDownload:  "download",
	CategoryPhysical:  "physical",
}
