package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
	"github.com/userhub/user-service/internal/core/validation"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// UserService orchestrates CRUD operations against the user repository.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Create validates the payload, hashes the password and persists the user.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := validation.ValidateCreate(in); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		DateOfBirth:    in.DateOfBirth,
		Address:        in.Address,
		PhoneNumber:    in.PhoneNumber,
		IdentityNumber: in.IdentityNumber,
		IdentityType:   in.IdentityType,
		ProfilePicture: in.ProfilePicture,
		PasswordHash:   hash,
		Role:           in.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

// List returns the requested page of users with pagination metadata. Page
// and limit fall back to 1 and 10 when absent or non-positive; a page past
// the end yields an empty list, not an error.
func (s *UserService) List(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	users, total, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ports.UserPage{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Users:       users,
	}, nil
}

// GetByID returns the user with the given identifier, or (nil, nil) when no
// row matches. A malformed identifier fails validation before any I/O.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := validation.ValidateUserID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies only the supplied fields, leaving the rest untouched. A
// supplied password is re-hashed so plaintext never reaches the store.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := validation.ValidateUserID(id); err != nil {
		return nil, err
	}
	if err := validation.ValidateUpdate(in); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		in.Password = &hash
	}

	updated, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.logger.Info().Str("user_id", id).Msg("user updated")
	}
	return updated, nil
}

// Delete removes the row permanently and returns the pre-deletion record,
// or (nil, nil) when no row matches.
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	if err := validation.ValidateUserID(id); err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		s.logger.Info().Str("user_id", id).Msg("user deleted")
	}
	return deleted, nil
}
