// Package security implements password hashing and access token signing.
package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tasklane/internal/domain"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.PasswordHasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside
// bcrypt's valid range fall back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements ports.PasswordHasher.
func (h *BcryptHasher) Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify implements ports.PasswordHasher. A mismatch wraps
// domain.ErrUnauthorized; any other bcrypt failure is reported as-is.
func (h *BcryptHasher) Verify(raw, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("password mismatch: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return fmt.Errorf("verifying password: %w", err)
	}
	return nil
}
