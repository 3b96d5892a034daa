package ports

import (
	"context"

	"tasklane/internal/domain/task"
	"tasklane/internal/domain/user"
)

// Repositories signal "not found" by returning a nil entity with a nil
// error. Deciding whether absence is an error (and which one) belongs to
// the handler that asked; repositories return errors only for transport
// failures.

// UserRepository is the persistence contract for the User aggregate.
type UserRepository interface {
	// Add persists a new user. A duplicate email surfaces as an error
	// wrapping domain.ErrConflict.
	Add(ctx context.Context, u *user.User) error

	// GetByOID returns the user with the given OID, or nil when absent.
	GetByOID(ctx context.Context, oid string) (*user.User, error)

	// GetByEmail returns the user with the given email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update applies the set fields of the patch. Nil fields are not
	// overwritten.
	Update(ctx context.Context, oid string, patch UserPatch) error

	// Delete removes the user. Deleting an absent user is a no-op.
	Delete(ctx context.Context, oid string) error
}

// UserPatch carries optional replacement values for a partial user update.
type UserPatch struct {
	Username *user.Username
	Email    *user.Email
	Password *user.Password
}

// TaskFilter is the page window for task listings.
type TaskFilter struct {
	Limit  int
	Offset int
}

// TaskRepository is the persistence contract for the Task aggregate.
type TaskRepository interface {
	// Add persists a new task.
	Add(ctx context.Context, t *task.Task) error

	// GetByOID returns the task with the given OID, or nil when absent.
	GetByOID(ctx context.Context, oid string) (*task.Task, error)

	// ListByOwner returns one page of the owner's tasks ordered by
	// creation time, plus the total count across all pages.
	ListByOwner(ctx context.Context, ownerOID string, f TaskFilter) ([]task.Task, int, error)

	// Save persists the current state of an already-added task.
	Save(ctx context.Context, t *task.Task) error

	// Delete removes the task. Deleting an absent task is a no-op.
	Delete(ctx context.Context, oid string) error
}
