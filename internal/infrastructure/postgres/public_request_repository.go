package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
)

var _ repository.PublicRequestRepository = (*PublicRequestRepo)(nil)

// PublicRequestRepo implements the PublicRequestRepository port over PostgreSQL.
type PublicRequestRepo struct {
	pool *pgxpool.Pool
}

// NewPublicRequestRepository builds the persistence adapter for procurement requests.
func NewPublicRequestRepository(pool *pgxpool.Pool) *PublicRequestRepo {
	return &PublicRequestRepo{pool: pool}
}

// Create persists a new procurement request.
func (r *PublicRequestRepo) Create(req *entity.PublicRequest) error {
	query := `
		INSERT INTO public_requests (id, product, total_quantity_kg, deadline, status, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		req.ID, req.Product, req.TotalQuantityKg, req.Deadline, req.Status, req.PostedBy,
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert public request: %w", err)
	}
	return nil
}

// ListOpen returns OPEN requests, newest first.
func (r *PublicRequestRepo) ListOpen() ([]*entity.PublicRequest, error) {
	query := `
		SELECT id, product, total_quantity_kg, deadline, status, posted_by, created_at, updated_at
		FROM public_requests WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(context.Background(), query, entity.RequestOpen)
	if err != nil {
		return nil, fmt.Errorf("list public requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.PublicRequest
	for rows.Next() {
		var p entity.PublicRequest
		if err := rows.Scan(&p.ID, &p.Product, &p.TotalQuantityKg, &p.Deadline, &p.Status,
			&p.PostedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan public request: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteAll clears the table. Used by the seed command.
func (r *PublicRequestRepo) DeleteAll() error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM public_requests`)
	if err != nil {
		return fmt.Errorf("delete public requests: %w", err)
	}
	return nil
}
