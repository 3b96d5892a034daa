package query_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"tasklane/internal/adapters/memory"
	"tasklane/internal/app/query"
	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
)

var discard = slog.New(slog.DiscardHandler)

func seedUser(t *testing.T, users *memory.UserRepository, email string) *user.User {
	t.Helper()

	username, err := user.NewUsername("tester")
	if err != nil {
		t.Fatalf("NewUsername: %v", err)
	}
	addr, err := user.NewEmail(email)
	if err != nil {
		t.Fatalf("NewEmail: %v", err)
	}
	password, err := user.NewPassword("hashed-secret")
	if err != nil {
		t.Fatalf("NewPassword: %v", err)
	}

	u := user.New(username, addr, password)
	if err := users.Add(context.Background(), u); err != nil {
		t.Fatalf("Add: %v", err)
	}
	return u
}

func TestGetUserByOIDHandler(t *testing.T) {
	t.Parallel()

	t.Run("Found", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seeded := seedUser(t, users, "jdoe@example.com")

		h := query.NewGetUserByOIDHandler(users, discard)
		u, err := h.Handle(context.Background(), query.GetUserByOID{UserOID: seeded.OID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email.String() != "jdoe@example.com" {
			t.Errorf("Email = %q, want %q", u.Email.String(), "jdoe@example.com")
		}
	})

	t.Run("Absent", func(t *testing.T) {
		t.Parallel()

		h := query.NewGetUserByOIDHandler(memory.NewUserRepository(), discard)
		_, err := h.Handle(context.Background(), query.GetUserByOID{UserOID: "missing"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestGetUserByEmailHandler(t *testing.T) {
	t.Parallel()

	t.Run("Found", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seeded := seedUser(t, users, "jdoe@example.com")

		h := query.NewGetUserByEmailHandler(users, discard)
		u, err := h.Handle(context.Background(), query.GetUserByEmail{Email: "jdoe@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.OID != seeded.OID {
			t.Errorf("OID = %q, want %q", u.OID, seeded.OID)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		t.Parallel()

		h := query.NewGetUserByEmailHandler(memory.NewUserRepository(), discard)
		_, err := h.Handle(context.Background(), query.GetUserByEmail{Email: "ghost@example.com"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

// stubCodec resolves one fixed token to claims.
type stubCodec struct {
	claims map[string]any
	err    error
}

func (c *stubCodec) Encode(map[string]any, time.Duration) (string, error) {
	return "", errors.New("not implemented")
}

func (c *stubCodec) Decode(string) (map[string]any, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.claims, nil
}

func TestGetCurrentUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("ValidToken", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seeded := seedUser(t, users, "jdoe@example.com")
		codec := &stubCodec{claims: map[string]any{"email": "jdoe@example.com"}}

		h := query.NewGetCurrentUserHandler(users, codec, discard)
		u, err := h.Handle(context.Background(), query.GetCurrentUser{Token: "valid"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.OID != seeded.OID {
			t.Errorf("OID = %q, want %q", u.OID, seeded.OID)
		}
	})

	t.Run("RejectedToken", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		codec := &stubCodec{err: errors.New("expired")}

		h := query.NewGetCurrentUserHandler(users, codec, discard)
		_, err := h.Handle(context.Background(), query.GetCurrentUser{Token: "stale"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("MissingEmailClaim", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		codec := &stubCodec{claims: map[string]any{"sub": "user-1"}}

		h := query.NewGetCurrentUserHandler(users, codec, discard)
		_, err := h.Handle(context.Background(), query.GetCurrentUser{Token: "clipped"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		codec := &stubCodec{claims: map[string]any{"email": "deleted@example.com"}}

		h := query.NewGetCurrentUserHandler(users, codec, discard)
		_, err := h.Handle(context.Background(), query.GetCurrentUser{Token: "orphaned"})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})
}
