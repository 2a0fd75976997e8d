package ports

import (
	"context"

	"github.com/userhub/user-service/internal/core/domain"
)

// CreateUserInput carries a create/register payload into the service layer.
// Field order matters: validation reports the first violated field only.
type CreateUserInput struct {
	FirstName      string `json:"firstName"      validate:"required"`
	LastName       string `json:"lastName"       validate:"required"`
	Email          string `json:"email"          validate:"required,email"`
	DateOfBirth    string `json:"dateOfBirth"    validate:"required,datetime=2006-01-02"`
	Address        string `json:"address"        validate:"required"`
	PhoneNumber    string `json:"phoneNumber"    validate:"required"`
	IdentityNumber string `json:"identityNumber" validate:"required"`
	IdentityType   string `json:"identityType"   validate:"required"`
	Password       string `json:"password"       validate:"required"`
	Role           string `json:"role"           validate:"required,oneof=User Admin Owner"`
	ProfilePicture string `json:"profilePicture" validate:"omitempty,uri"`
}

// UpdateUserInput carries a partial update. Nil pointers mean "leave the
// field untouched"; non-nil values must satisfy the same rules as on create
// (omitnil validates present-but-empty strings instead of skipping them).
type UpdateUserInput struct {
	FirstName      *string `json:"firstName"      validate:"omitnil,min=1"`
	LastName       *string `json:"lastName"       validate:"omitnil,min=1"`
	Email          *string `json:"email"          validate:"omitnil,email"`
	DateOfBirth    *string `json:"dateOfBirth"    validate:"omitnil,datetime=2006-01-02"`
	Address        *string `json:"address"        validate:"omitnil,min=1"`
	PhoneNumber    *string `json:"phoneNumber"    validate:"omitnil,min=1"`
	IdentityNumber *string `json:"identityNumber" validate:"omitnil,min=1"`
	IdentityType   *string `json:"identityType"   validate:"omitnil,min=1"`
	Password       *string `json:"password"       validate:"omitnil,min=1"`
	Role           *string `json:"role"           validate:"omitnil,oneof=User Admin Owner"`
	ProfilePicture *string `json:"profilePicture" validate:"omitnil,uri"`
}

// Empty reports whether the payload carries no recognised field at all.
func (in UpdateUserInput) Empty() bool {
	return in.FirstName == nil &&
		in.LastName == nil &&
		in.Email == nil &&
		in.DateOfBirth == nil &&
		in.Address == nil &&
		in.PhoneNumber == nil &&
		in.IdentityNumber == nil &&
		in.IdentityType == nil &&
		in.Password == nil &&
		in.Role == nil &&
		in.ProfilePicture == nil
}

// UserPage is one page of users plus the pagination metadata the list
// endpoint exposes.
type UserPage struct {
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	Users       []*domain.User
}

// UserService is the CRUD orchestration surface.
//
// GetByID, Update and Delete return (nil, nil) when no record matches the
// identifier; callers translate that into their own "not found" signal.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*UserPage, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
