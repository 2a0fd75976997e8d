package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
	RoleOwner = "Owner"
)

// User models a profile record.
//
// PasswordHash is serialised under the "password" key: the upstream API
// contract returns the stored hash on every read path, and this service
// preserves that behaviour.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Address        string    `json:"address"`
	PhoneNumber    string    `json:"phoneNumber"`
	IdentityNumber string    `json:"identityNumber"`
	IdentityType   string    `json:"identityType"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	PasswordHash   string    `json:"password"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials carries one uniform message for both unknown email
// and wrong password, so login failures never reveal which part was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

var ErrTooManyAttempts = errors.New("too many failed login attempts")
