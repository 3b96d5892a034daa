package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/ports"
)

const uniqueViolation = "23505"

// Compile-time check.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository persists users in the users table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a UserRepository over the pool.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Add implements ports.UserRepository.
func (r *UserRepository) Add(ctx context.Context, u *user.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (oid, created_at, username, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.OID, u.CreatedAt, u.Username.String(), u.Email.String(), u.Password.Hash(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("user with email %q already exists: %w", u.Email.String(), domain.ErrConflict)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetByOID implements ports.UserRepository.
func (r *UserRepository) GetByOID(ctx context.Context, oid string) (*user.User, error) {
	return r.getOne(ctx,
		`SELECT oid, created_at, username, email, password_hash FROM users WHERE oid = $1`, oid)
}

// GetByEmail implements ports.UserRepository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx,
		`SELECT oid, created_at, username, email, password_hash FROM users WHERE email = $1`, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var (
		oid, username, email, hash string
		createdAt                  time.Time
	)

	err := r.db.QueryRowContext(ctx, query, arg).Scan(&oid, &createdAt, &username, &email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting user: %w", err)
	}

	return user.Restore(oid, createdAt, username, email, hash), nil
}

// ExistsByEmail implements ports.UserRepository.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

// Update implements ports.UserRepository. Nil patch fields keep their
// stored values via COALESCE.
func (r *UserRepository) Update(ctx context.Context, oid string, patch ports.UserPatch) error {
	var username, email, hash *string
	if patch.Username != nil {
		v := patch.Username.String()
		username = &v
	}
	if patch.Email != nil {
		v := patch.Email.String()
		email = &v
	}
	if patch.Password != nil {
		v := patch.Password.Hash()
		hash = &v
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET username = COALESCE($2, username),
		     email = COALESCE($3, email),
		     password_hash = COALESCE($4, password_hash)
		 WHERE oid = $1`,
		oid, username, email, hash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("email already in use: %w", domain.ErrConflict)
		}
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// Delete implements ports.UserRepository.
func (r *UserRepository) Delete(ctx context.Context, oid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE oid = $1`, oid); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
