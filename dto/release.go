package dto

import (
	"time"

	"label/models"
)

type CreateReleaseRequest struct {
	BrandID     uint     `json:"brandId" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Genres      []string `json:"genres"`
	CoverURL    string   `json:"coverUrl"`
	ReleaseDate string   `json:"releaseDate"`
}

type UpdateReleaseRequest struct {
	ID          uint     `json:"id" validate:"required"`
	Title       string   `json:"title"`
	Genres      []string `json:"genres"`
	CoverURL    string   `json:"coverUrl"`
	ReleaseDate string   `json:"releaseDate"`
}

type ChangeReleaseStatusRequest struct {
	ID     uint `json:"id" validate:"required"`
	Status int  `json:"status" validate:"gte=0,lte=4"`
}

type ReleaseResponse struct {
	ID          uint      `json:"id"`
	BrandID     uint      `json:"brandId"`
	BrandName   string    `json:"brandName,omitempty"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	CoverURL    string    `json:"coverUrl"`
	Status      int       `json:"status"`
	ReleaseDate string    `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ScoredRelease release kèm điểm phù hợp khi tìm kiếm mờ
type ScoredRelease struct {
	Release models.Release `json:"release"`
	Score   int            `json:"score"`
}
