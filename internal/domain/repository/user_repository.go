package repository

import "github.com/dpamis/procurement-api/internal/domain/entity"

// UserRepository defines the persistence port for User (DIP).
// GetByID and GetByEmail return (nil, nil) when no row matches.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// Update persists the user conditioned on the version it was read at
	// (compare-and-swap). Returns domain.ErrConflict when the stored version
	// differs, i.e. a concurrent writer got there first.
	Update(user *entity.User) error
	ListByStatus(status string, limit, offset int) ([]*entity.User, error)
}
