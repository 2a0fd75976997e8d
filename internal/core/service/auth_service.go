package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
	"github.com/userhub/user-service/internal/core/validation"
)

// bcryptCost is the fixed work factor applied to every stored password.
const bcryptCost = 10

const defaultTokenTTL = time.Hour

// LoginThrottle tracks failed login attempts per email address.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login with bcrypt password
// hashing and HS256 token issuance.
type AuthService struct {
	repo      ports.UserRepository
	throttle  LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which case
// failed logins are not rate limited.
func NewAuthService(repo ports.UserRepository, throttle LoginThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// HashPassword produces a salted bcrypt hash at the fixed cost factor.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Register validates the payload, hashes the password and persists the user.
// A duplicate email surfaces as domain.ErrEmailTaken from the store's
// uniqueness constraint.
func (s *AuthService) Register(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
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

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login authenticates an email/password pair and returns a signed token
// whose subject is the user's identifier. Unknown email and wrong password
// both fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooManyFailures(ctx, email)
		if err != nil {
			// A throttle outage must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle check failed")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !VerifyPassword(password, user.PasswordHash) {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, email); err != nil {
				s.logger.Warn().Err(err).Msg("failed to record login failure")
			}
		}
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	return s.issueToken(user.ID)
}

func (s *AuthService) issueToken(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
