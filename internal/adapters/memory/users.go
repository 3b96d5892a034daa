// Package memory provides in-memory repository implementations backed by
// maps under an RWMutex. The local profile runs on them, and the
// application-layer tests use them as fixtures instead of generated mocks.
package memory

import (
	"context"
	"sync"

	"tasklane/internal/domain/user"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository stores users keyed by OID with an email index.
type UserRepository struct {
	mu      sync.RWMutex
	byOID   map[string]user.User
	byEmail map[string]string // email -> OID
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byOID:   make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// userSnapshot copies the persistent fields only. The pending-event
// buffer stays with the caller's aggregate; a reloaded user must never
// carry events from an earlier request.
func userSnapshot(u *user.User) user.User {
	return *user.Restore(u.OID, u.CreatedAt, u.Username.String(), u.Email.String(), u.Password.Hash())
}

// Add implements ports.UserRepository.
func (r *UserRepository) Add(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byOID[u.OID] = userSnapshot(u)
	r.byEmail[u.Email.String()] = u.OID
	return nil
}

// GetByOID implements ports.UserRepository.
func (r *UserRepository) GetByOID(_ context.Context, oid string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byOID[oid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail implements ports.UserRepository.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	oid, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	u := r.byOID[oid]
	return &u, nil
}

// ExistsByEmail implements ports.UserRepository.
func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}

// Update implements ports.UserRepository. Nil patch fields are untouched.
func (r *UserRepository) Update(_ context.Context, oid string, patch ports.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byOID[oid]
	if !ok {
		return nil
	}

	if patch.Email != nil {
		delete(r.byEmail, u.Email.String())
		u.Email = *patch.Email
		r.byEmail[u.Email.String()] = oid
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}

	r.byOID[oid] = u
	return nil
}

// Delete implements ports.UserRepository.
func (r *UserRepository) Delete(_ context.Context, oid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byOID[oid]; ok {
		delete(r.byEmail, u.Email.String())
		delete(r.byOID, oid)
	}
	return nil
}
