// Package user holds the User aggregate, its value objects, and the
// events it emits.
package user

import (
	"time"

	"tasklane/internal/domain"
)

// User is the account aggregate. It is constructed in the registration
// command handler, handed to the repository, and discarded; each request
// reloads it.
type User struct {
	domain.Entity

	Username Username
	Email    Email
	Password Password
}

// New builds a User from validated value objects and registers the
// corresponding Created event.
func New(username Username, email Email, password Password) *User {
	u := &User{
		Entity:   domain.NewEntity(),
		Username: username,
		Email:    email,
		Password: password,
	}

	u.RegisterEvent(Created{
		EventMeta: domain.NewEventMeta(),
		UserOID:   u.OID,
		Username:  username.String(),
		Email:     email.String(),
	})

	return u
}

// Restore rebuilds a User from persisted state. The stored values were
// validated when first constructed, so validation is not repeated and no
// event is registered.
func Restore(oid string, createdAt time.Time, username, email, passwordHash string) *User {
	return &User{
		Entity:   domain.RestoreEntity(oid, createdAt),
		Username: Username{value: username},
		Email:    Email{value: email},
		Password: Password{hash: passwordHash},
	}
}
