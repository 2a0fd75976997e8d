package ports

import (
	"context"

	"github.com/userhub/user-service/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}
