package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuses for PublicRequest.
const (
	RequestOpen   = "OPEN"
	RequestClosed = "CLOSED"
)

// DefaultPostedBy is used when a request is created without an explicit poster.
const DefaultPostedBy = "HQ Procurement Team"

// PublicRequest is an open procurement call published by HQ, visible without
// authentication (e.g. "Irish Potatoes, 12000 kg, deadline Friday").
type PublicRequest struct {
	ID              string
	Product         string
	TotalQuantityKg decimal.Decimal
	Deadline        time.Time
	Status          string // OPEN, CLOSED
	PostedBy        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
