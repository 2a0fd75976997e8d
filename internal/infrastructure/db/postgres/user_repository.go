package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

// userColumns is the canonical select/returning list. date_of_birth is a
// DATE column exposed as its ISO text form; a NULL profile_picture comes
// back as the empty string.
const userColumns = `id, first_name, last_name, email, date_of_birth::text, address,
	phone_number, identity_number, identity_type, COALESCE(profile_picture, ''),
	password_hash, role, created_at, updated_at`

// PostgresUserRepository persists user records in the users table.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user. The identifier and timestamps are assigned
// here, never by the caller.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	u := *user
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	const query = `
		INSERT INTO users (id, first_name, last_name, email, date_of_birth, address,
			phone_number, identity_number, identity_type, profile_picture,
			password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, NULLIF($10, ''), $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.DateOfBirth, u.Address,
		u.PhoneNumber, u.IdentityNumber, u.IdentityType, u.ProfilePicture,
		u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &u, nil
}

// List returns one page of users in stable creation order plus the total
// row count.
func (r *PostgresUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at, id LIMIT $1 OFFSET $2`, userColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Update applies only the supplied fields in a single statement and returns
// the resulting row. updated_at always advances; created_at and id are never
// touched.
func (r *PostgresUserRepository) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	set := make([]string, 0, 12)
	args := make([]any, 0, 12)

	add := func(expr string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(expr, len(args)))
	}

	if in.FirstName != nil {
		add("first_name = $%d", *in.FirstName)
	}
	if in.LastName != nil {
		add("last_name = $%d", *in.LastName)
	}
	if in.Email != nil {
		add("email = $%d", *in.Email)
	}
	if in.DateOfBirth != nil {
		add("date_of_birth = $%d::date", *in.DateOfBirth)
	}
	if in.Address != nil {
		add("address = $%d", *in.Address)
	}
	if in.PhoneNumber != nil {
		add("phone_number = $%d", *in.PhoneNumber)
	}
	if in.IdentityNumber != nil {
		add("identity_number = $%d", *in.IdentityNumber)
	}
	if in.IdentityType != nil {
		add("identity_type = $%d", *in.IdentityType)
	}
	if in.Password != nil {
		// The service layer has already replaced the plaintext with a hash.
		add("password_hash = $%d", *in.Password)
	}
	if in.Role != nil {
		add("role = $%d", *in.Role)
	}
	if in.ProfilePicture != nil {
		add("profile_picture = NULLIF($%d, '')", *in.ProfilePicture)
	}
	set = append(set, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), len(args), userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes the row permanently and returns its pre-deletion state.
func (r *PostgresUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`DELETE FROM users WHERE id = $1 RETURNING %s`, userColumns)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.DateOfBirth, &u.Address,
		&u.PhoneNumber, &u.IdentityNumber, &u.IdentityType, &u.ProfilePicture,
		&u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// compile-time interface check
var _ ports.UserRepository = (*PostgresUserRepository)(nil)
