package ports

import (
	"context"

	"github.com/userhub/user-service/internal/core/domain"
)

// UserRepository defines the persistence surface for user records.
//
// Lookups report absence as a (nil, nil) return: a missing row is a normal
// outcome, not an error. Create and Update return domain.ErrEmailTaken when
// the store's email uniqueness constraint is violated.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
