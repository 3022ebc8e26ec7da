package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePublicRequestRequest input for posting a procurement request.
type CreatePublicRequestRequest struct {
	Product         string          `json:"product" validate:"required,max=200"`
	TotalQuantityKg decimal.Decimal `json:"total_quantity_kg" validate:"required"`
	Deadline        time.Time       `json:"deadline" validate:"required"`
	PostedBy        string          `json:"posted_by" validate:"omitempty,max=200"`
}

// PublicRequestResponse public view of a procurement request.
type PublicRequestResponse struct {
	ID              string          `json:"id"`
	Product         string          `json:"product"`
	TotalQuantityKg decimal.Decimal `json:"total_quantity_kg"`
	Deadline        time.Time       `json:"deadline"`
	Status          string          `json:"status"`
	PostedBy        string          `json:"posted_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
