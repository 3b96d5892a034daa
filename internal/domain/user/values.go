package user

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tasklane/internal/domain"
)

// Value object constraints.
const (
	MaxUsernameLen = 30
	MinEmailLen    = 4
	MaxEmailLen    = 256
)

// Username is a validated user display name. The zero value is invalid;
// construct through NewUsername.
type Username struct {
	value string
}

// NewUsername validates and wraps a raw username.
func NewUsername(raw string) (Username, error) {
	if raw == "" {
		return Username{}, domain.NewValidationError("username", domain.MsgRequired)
	}
	if utf8.RuneCountInString(raw) > MaxUsernameLen {
		return Username{}, domain.NewValidationError("username",
			fmt.Sprintf("must be at most %d characters", MaxUsernameLen))
	}
	return Username{value: raw}, nil
}

func (u Username) String() string { return u.value }

// Email is a validated email address. Case is preserved as supplied.
type Email struct {
	value string
}

// NewEmail validates and wraps a raw email address.
func NewEmail(raw string) (Email, error) {
	switch {
	case raw == "":
		return Email{}, domain.NewValidationError("email", domain.MsgRequired)
	case !strings.Contains(raw, "@"):
		return Email{}, domain.NewValidationError("email", fmt.Sprintf("malformed address %q", raw))
	case utf8.RuneCountInString(raw) < MinEmailLen:
		return Email{}, domain.NewValidationError("email",
			fmt.Sprintf("must be at least %d characters", MinEmailLen))
	case utf8.RuneCountInString(raw) > MaxEmailLen:
		return Email{}, domain.NewValidationError("email",
			fmt.Sprintf("must be at most %d characters", MaxEmailLen))
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// Password wraps an already-hashed password. Hashing happens in the
// application layer through the hasher port before construction; the value
// object only rejects the empty hash.
type Password struct {
	hash string
}

// NewPassword wraps a password hash.
func NewPassword(hash string) (Password, error) {
	if hash == "" {
		return Password{}, domain.NewValidationError("password", domain.MsgRequired)
	}
	return Password{hash: hash}, nil
}

// Hash returns the stored password hash.
func (p Password) Hash() string { return p.hash }
