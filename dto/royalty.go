package dto

import (
	"label/models"

	"github.com/shopspring/decimal"
)

// RoyaltySplitInput phần chia của một nghệ sĩ gửi từ UI, tỷ lệ theo
// thang [0,100]. Chuyển về thang lưu trữ [0,1] duy nhất tại ToModel.
type RoyaltySplitInput struct {
	ArtistID            uint            `json:"artistId" validate:"required"`
	StreamingPercentage decimal.Decimal `json:"streamingPercentage"`
	SyncPercentage      decimal.Decimal `json:"syncPercentage"`
	DownloadPercentage  decimal.Decimal `json:"downloadPercentage"`
	PhysicalPercentage  decimal.Decimal `json:"physicalPercentage"`
}

// CategoryPercentage trả về tỷ lệ theo loại doanh thu (thang [0,100])
func (in *RoyaltySplitInput) CategoryPercentage(category int) decimal.Decimal {
	switch category {
	case models.CategoryStreaming:
		return in.StreamingPercentage
	case models.CategorySync:
		return in.SyncPercentage
	case models.CategoryDownload:
		return in.DownloadPercentage
	case models.CategoryPhysical:
		return in.PhysicalPercentage
	default:
		return decimal.Zero
	}
}

var oneHundred = decimal.NewFromInt(100)

// ToModel chuyển input UI về model lưu trữ, chia tỷ lệ cho 100
func (in *RoyaltySplitInput) ToModel(releaseID uint) models.RoyaltySplit {
	return models.RoyaltySplit{
		ReleaseID:           releaseID,
		ArtistID:            in.ArtistID,
		StreamingPercentage: in.StreamingPercentage.Div(oneHundred),
		SyncPercentage:      in.SyncPercentage.Div(oneHundred),
		DownloadPercentage:  in.DownloadPercentage.Div(oneHundred),
		PhysicalPercentage:  in.PhysicalPercentage.Div(oneHundred),
	}
}

type SaveRoyaltySplitsRequest struct {
	Splits []RoyaltySplitInput `json:"splits"`
}

// LabelShareResponse phần còn lại thuộc về nhãn theo từng loại doanh thu,
// thang [0,100]
type LabelShareResponse struct {
	Streaming decimal.Decimal `json:"streaming"`
	Sync      decimal.Decimal `json:"sync"`
	Download  decimal.Decimal `json:"download"`
	Physical  decimal.Decimal `json:"physical"`
}

type RoyaltySplitsResponse struct {
	ReleaseID  uint                 `json:"releaseId"`
	Splits     []models.RoyaltySplit `json:"splits"`
	LabelShare LabelShareResponse   `json:"labelShare"`
}
