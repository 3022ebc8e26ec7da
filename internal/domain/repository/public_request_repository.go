package repository

import "github.com/dpamis/procurement-api/internal/domain/entity"

// PublicRequestRepository defines the persistence port for PublicRequest.
type PublicRequestRepository interface {
	Create(req *entity.PublicRequest) error
	// ListOpen returns OPEN requests, newest first.
	ListOpen() ([]*entity.PublicRequest, error)
	// DeleteAll clears the table (seed tooling).
	DeleteAll() error
}
