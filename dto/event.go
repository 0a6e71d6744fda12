package dto

import (
	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	BrandID         uint            `json:"brandId" validate:"required"`
	Name            string          `json:"name" validate:"required"`
	Venue           string          `json:"venue"`
	Date            string          `json:"date"`
	VerificationPin string          `json:"verificationPin" validate:"required"`
	TicketPrice     decimal.Decimal `json:"ticketPrice"`
}

type UpdateEventRequest struct {
	ID              uint            `json:"id" validate:"required"`
	Name            string          `json:"name"`
	Venue           string          `json:"venue"`
	Date            string          `json:"date"`
	VerificationPin string          `json:"verificationPin"`
	TicketPrice     decimal.Decimal `json:"ticketPrice"`
}
