package user_test

import (
	"testing"
	"time"

	"tasklane/internal/domain/user"
)

func newUser(t *testing.T) *user.User {
	t.Helper()

	username, err := user.NewUsername("jdoe")
	if err != nil {
		t.Fatalf("NewUsername: %v", err)
	}
	email, err := user.NewEmail("jdoe@example.com")
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	password, err := user.NewPassword("hashed-secret")
	if err != nil {
		t.Fatalf("NewPassword: %v", err)
	}

	return user.New(username, email, password)
}

func TestNew_RegistersCreatedEvent(t *testing.T) {
	t.Parallel()

	u := newUser(t)

	if u.OID == "" {
		t.Error("expected generated OID")
	}

	events := u.PullEvents()
	if len(events) != 1 {
		t.Fatalf("pulled %d events, want 1", len(events))
	}

	created, ok := events[0].(user.Created)
	if !ok {
		t.Fatalf("event type = %T, want user.Created", events[0])
	}
	if created.EventKind() != user.KindCreated {
		t.Errorf("EventKind() = %q, want %q", created.EventKind(), user.KindCreated)
	}
	if created.UserOID != u.OID {
		t.Errorf("UserOID = %q, want %q", created.UserOID, u.OID)
	}
	if created.Username != "jdoe" {
		t.Errorf("Username = %q, want %q", created.Username, "jdoe")
	}
	if created.Email != "jdoe@example.com" {
		t.Errorf("Email = %q, want %q", created.Email, "jdoe@example.com")
	}
}

func TestNew_EventsDrainOnce(t *testing.T) {
	t.Parallel()

	u := newUser(t)
	u.PullEvents()

	if events := u.PullEvents(); len(events) != 0 {
		t.Errorf("second pull returned %d events, want 0", len(events))
	}
}

func TestRestore_NoEvent(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	u := user.Restore("user-1", createdAt, "jdoe", "jdoe@example.com", "hashed-secret")

	if u.OID != "user-1" {
		t.Errorf("OID = %q, want %q", u.OID, "user-1")
	}
	if !u.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", u.CreatedAt, createdAt)
	}
	if u.Username.String() != "jdoe" {
		t.Errorf("Username = %q, want %q", u.Username.String(), "jdoe")
	}
	if u.Email.String() != "jdoe@example.com" {
		t.Errorf("Email = %q, want %q", u.Email.String(), "jdoe@example.com")
	}
	if u.Password.Hash() != "hashed-secret" {
		t.Errorf("Password hash = %q, want %q", u.Password.Hash(), "hashed-secret")
	}
	if events := u.PullEvents(); len(events) != 0 {
		t.Errorf("restore registered %d events, want 0", len(events))
	}
}
