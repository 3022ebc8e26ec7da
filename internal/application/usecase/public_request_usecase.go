package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dpamis/procurement-api/internal/application/dto"
	"github.com/dpamis/procurement-api/internal/domain"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
)

// PublicRequestUseCase lists and publishes open procurement requests.
type PublicRequestUseCase struct {
	repo repository.PublicRequestRepository
	now  func() time.Time
}

// NewPublicRequestUseCase builds the public request use case.
func NewPublicRequestUseCase(repo repository.PublicRequestRepository) *PublicRequestUseCase {
	return &PublicRequestUseCase{repo: repo, now: time.Now}
}

// ListOpen returns all OPEN requests, newest first. Public, no auth.
func (uc *PublicRequestUseCase) ListOpen() ([]dto.PublicRequestResponse, error) {
	requests, err := uc.repo.ListOpen()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PublicRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, *toPublicRequestResponse(r))
	}
	return out, nil
}

// Create publishes a new OPEN request. Product, a positive quantity and a
// deadline are required.
func (uc *PublicRequestUseCase) Create(in dto.CreatePublicRequestRequest) (*dto.PublicRequestResponse, error) {
	if in.Product == "" || in.Deadline.IsZero() || !in.TotalQuantityKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	postedBy := in.PostedBy
	if postedBy == "" {
		postedBy = entity.DefaultPostedBy
	}
	now := uc.now()
	req := &entity.PublicRequest{
		ID:              uuid.New().String(),
		Product:         in.Product,
		TotalQuantityKg: in.TotalQuantityKg,
		Deadline:        in.Deadline,
		Status:          entity.RequestOpen,
		PostedBy:        postedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(req); err != nil {
		return nil, err
	}
	return toPublicRequestResponse(req), nil
}

func toPublicRequestResponse(r *entity.PublicRequest) *dto.PublicRequestResponse {
	return &dto.PublicRequestResponse{
		ID:              r.ID,
		Product:         r.Product,
		TotalQuantityKg: r.TotalQuantityKg,
		Deadline:        r.Deadline,
		Status:          r.Status,
		PostedBy:        r.PostedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
