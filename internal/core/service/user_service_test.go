package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     []*domain.User // insertion order
	createErr error          // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	u := cloneUser(user)
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users = append(r.users, u)
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, offset, limit int) ([]*domain.User, int64, error) {
	total := int64(len(r.users))
	if offset >= len(r.users) {
		return []*domain.User{}, total, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	page := make([]*domain.User, 0, end-offset)
	for _, u := range r.users[offset:end] {
		page = append(page, cloneUser(u))
	}
	return page, total, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID != id {
			continue
		}
		if in.Email != nil {
			for _, other := range r.users {
				if other.ID != id && other.Email == *in.Email {
					return nil, domain.ErrEmailTaken
				}
			}
			u.Email = *in.Email
		}
		if in.FirstName != nil {
			u.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			u.LastName = *in.LastName
		}
		if in.DateOfBirth != nil {
			u.DateOfBirth = *in.DateOfBirth
		}
		if in.Address != nil {
			u.Address = *in.Address
		}
		if in.PhoneNumber != nil {
			u.PhoneNumber = *in.PhoneNumber
		}
		if in.IdentityNumber != nil {
			u.IdentityNumber = *in.IdentityNumber
		}
		if in.IdentityType != nil {
			u.IdentityType = *in.IdentityType
		}
		if in.Password != nil {
			u.PasswordHash = *in.Password
		}
		if in.Role != nil {
			u.Role = *in.Role
		}
		if in.ProfilePicture != nil {
			u.ProfilePicture = *in.ProfilePicture
		}
		u.UpdatedAt = time.Now().UTC()
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (*domain.User, error) {
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

var _ ports.UserRepository = (*stubUserRepo)(nil)

func validCreateInput(email string) ports.CreateUserInput {
	return ports.CreateUserInput{
		FirstName:      "John",
		LastName:       "Doe",
		Email:          email,
		DateOfBirth:    "1990-01-01",
		Address:        "123 Main St",
		PhoneNumber:    "+1234567890",
		IdentityNumber: "AB123456",
		IdentityType:   "Passport",
		Password:       "password123",
		Role:           domain.RoleUser,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestUserService_Create_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	in := validCreateInput("john@example.com")
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.PasswordHash == in.Password {
		t.Fatalf("expected password to be hashed before persistence")
	}
	if !VerifyPassword(in.Password, created.PasswordHash) {
		t.Fatalf("stored hash does not verify against the plaintext")
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected user, got nil")
	}
	if got.FirstName != in.FirstName || got.LastName != in.LastName ||
		got.Email != in.Email || got.DateOfBirth != in.DateOfBirth ||
		got.Address != in.Address || got.PhoneNumber != in.PhoneNumber ||
		got.IdentityNumber != in.IdentityNumber || got.IdentityType != in.IdentityType ||
		got.Role != in.Role {
		t.Fatalf("round-tripped user differs from input: %+v", got)
	}
}

func TestUserService_Create_Invalid(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	in := validCreateInput("bad@example.com")
	in.Email = "not-an-email"

	_, err := svc.Create(context.Background(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no row should be persisted on validation failure")
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validCreateInput("dup@example.com")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), validCreateInput("dup@example.com")); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("exactly one row should exist, got %d", len(repo.users))
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	for i := 0; i < 15; i++ {
		in := validCreateInput(string(rune('a'+i)) + "@example.com")
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	page, err := svc.List(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Users) != 5 {
		t.Fatalf("expected 5 users on page 2, got %d", len(page.Users))
	}
	if page.TotalItems != 15 {
		t.Fatalf("expected totalItems 15, got %d", page.TotalItems)
	}
	if page.TotalPages != 2 {
		t.Fatalf("expected totalPages 2, got %d", page.TotalPages)
	}
	if page.CurrentPage != 2 {
		t.Fatalf("expected currentPage 2, got %d", page.CurrentPage)
	}
}

func TestUserService_List_Defaults(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	// Zero values stand in for absent/non-numeric query parameters.
	page, err := svc.List(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.CurrentPage != 1 {
		t.Fatalf("expected default page 1, got %d", page.CurrentPage)
	}
	if page.TotalPages != 0 || page.TotalItems != 0 {
		t.Fatalf("expected empty store metadata, got %+v", page)
	}
	if len(page.Users) != 0 {
		t.Fatalf("expected empty page, got %d users", len(page.Users))
	}
}

func TestUserService_List_PastTheEnd(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.Create(context.Background(), validCreateInput("solo@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	page, err := svc.List(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("pages past the end must not error, got %v", err)
	}
	if len(page.Users) != 0 {
		t.Fatalf("expected empty list, got %d users", len(page.Users))
	}
	if page.TotalItems != 1 || page.CurrentPage != 99 {
		t.Fatalf("unexpected metadata: %+v", page)
	}
}

func TestUserService_GetByID_InvalidID(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserService_GetByID_Absent(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	got, err := svc.GetByID(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), validCreateInput("old@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newEmail := "new@x.com"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Email: &newEmail})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated == nil {
		t.Fatalf("expected updated user, got nil")
	}
	if updated.Email != newEmail {
		t.Fatalf("email not updated: %s", updated.Email)
	}
	if updated.FirstName != created.FirstName || updated.LastName != created.LastName ||
		updated.Address != created.Address || updated.Role != created.Role ||
		updated.PasswordHash != created.PasswordHash {
		t.Fatalf("fields other than email must be untouched: %+v", updated)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt must advance")
	}
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), validCreateInput("pw@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPassword := "hunter2hunter2"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{Password: &newPassword})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.PasswordHash == newPassword {
		t.Fatalf("plaintext password must never be persisted")
	}
	if !VerifyPassword(newPassword, updated.PasswordHash) {
		t.Fatalf("new hash does not verify")
	}
}

func TestUserService_Update_EmptyPayload(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), validCreateInput("noop@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, ports.UpdateUserInput{})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for no-op update, got %v", err)
	}
}

func TestUserService_Update_Absent(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	email := "ghost@example.com"
	got, err := svc.Update(context.Background(), uuid.NewString(), ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}

func TestUserService_Delete_ThenGet(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), validCreateInput("gone@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted == nil || deleted.Email != created.Email {
		t.Fatalf("expected pre-deletion record, got %+v", deleted)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected user to be gone, got %+v", got)
	}
}

func TestUserService_Delete_Absent(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	got, err := svc.Delete(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("absence must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil user, got %+v", got)
	}
}
