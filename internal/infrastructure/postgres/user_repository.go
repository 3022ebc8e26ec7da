package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dpamis/procurement-api/internal/domain"
	"github.com/dpamis/procurement-api/internal/domain/entity"
	"github.com/dpamis/procurement-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, role, status, supplier_type, full_name,
	cooperative_name, phone, province, district, sector, national_id_path,
	business_license_path, otp, otp_expires_at, version, created_at, updated_at`

// UserRepo implements the UserRepository port over PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository builds the persistence adapter for users.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persists a new user. Duplicate emails map to ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, status, supplier_type, full_name,
			cooperative_name, phone, province, district, sector, national_id_path,
			business_license_path, otp, otp_expires_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Role, user.Status, user.SupplierType,
		user.FullName, user.CooperativeName, user.Phone, user.Province, user.District,
		user.Sector, user.NationalIDPath, user.BusinessLicensePath,
		nullString(user.OTP), nullTime(user.OTPExpiresAt), user.Version,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by ID. Returns (nil, nil) when absent.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail fetches a user by email (stored lowercase). Returns (nil, nil) when absent.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email), "get user by email")
}

// Update writes the user back conditioned on the version it was read at.
// The version bumps on success; zero rows affected means a concurrent writer
// won and maps to ErrConflict.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET status = $3, otp = $4, otp_expires_at = $5, password_hash = $6,
			phone = $7, updated_at = $8, version = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.pool.Exec(context.Background(), query,
		user.ID, user.Version, user.Status,
		nullString(user.OTP), nullTime(user.OTPExpiresAt), user.PasswordHash,
		user.Phone, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	user.Version++
	return nil
}

// ListByStatus lists users in a lifecycle status with pagination, oldest
// application first (HQ works the queue in arrival order).
func (r *UserRepo) ListByStatus(status string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var u entity.User
	var otp *string
	var otpExpiresAt *time.Time
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.SupplierType,
		&u.FullName, &u.CooperativeName, &u.Phone, &u.Province, &u.District,
		&u.Sector, &u.NationalIDPath, &u.BusinessLicensePath,
		&otp, &otpExpiresAt, &u.Version, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if otp != nil {
		u.OTP = *otp
	}
	if otpExpiresAt != nil {
		u.OTPExpiresAt = *otpExpiresAt
	}
	return &u, nil
}

// nullString maps "" to NULL so otp and otp_expires_at stay paired in the DB.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
