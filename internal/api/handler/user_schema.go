package handler

import (
	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createUserRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"dateOfBirth"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	IdentityNumber string `json:"identityNumber"`
	IdentityType   string `json:"identityType"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

func (req createUserRequest) toInput() ports.CreateUserInput {
	return ports.CreateUserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		IdentityNumber: req.IdentityNumber,
		IdentityType:   req.IdentityType,
		Password:       req.Password,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
	}
}

// updateUserRequest mirrors createUserRequest with every field optional.
// Absent keys stay nil so the service can tell "not supplied" from "empty".
type updateUserRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email"`
	DateOfBirth    *string `json:"dateOfBirth"`
	Address        *string `json:"address"`
	PhoneNumber    *string `json:"phoneNumber"`
	IdentityNumber *string `json:"identityNumber"`
	IdentityType   *string `json:"identityType"`
	Password       *string `json:"password"`
	Role           *string `json:"role"`
	ProfilePicture *string `json:"profilePicture"`
}

func (req updateUserRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		IdentityNumber: req.IdentityNumber,
		IdentityType:   req.IdentityType,
		Password:       req.Password,
		Role:           req.Role,
		ProfilePicture: req.ProfilePicture,
	}
}

// listUsersResponse is the page envelope returned by GET /users.
type listUsersResponse struct {
	TotalItems  int64          `json:"totalItems"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Users       []*domain.User `json:"users"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
