package command_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tasklane/internal/adapters/memory"
	"tasklane/internal/app/command"
	"tasklane/internal/domain"
)

func TestAuthenticateUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("CorrectCredentials", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seeded := seedUser(t, users, "login@example.com")

		h := command.NewAuthenticateUserHandler(users, stubHasher{}, discard)
		u, err := h.Handle(context.Background(), command.AuthenticateUser{
			Email:    "login@example.com",
			Password: "hunter2",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.OID != seeded.OID {
			t.Errorf("OID = %q, want %q", u.OID, seeded.OID)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seedUser(t, users, "login@example.com")

		h := command.NewAuthenticateUserHandler(users, stubHasher{}, discard)
		_, err := h.Handle(context.Background(), command.AuthenticateUser{
			Email:    "login@example.com",
			Password: "wrong",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seedUser(t, users, "login@example.com")

		h := command.NewAuthenticateUserHandler(users, stubHasher{}, discard)

		_, unknownErr := h.Handle(context.Background(), command.AuthenticateUser{
			Email:    "ghost@example.com",
			Password: "hunter2",
		})
		_, wrongErr := h.Handle(context.Background(), command.AuthenticateUser{
			Email:    "login@example.com",
			Password: "wrong",
		})

		if !errors.Is(unknownErr, domain.ErrUnauthorized) {
			t.Fatalf("unknown email error = %v, want ErrUnauthorized", unknownErr)
		}
		// Same message for both failure modes so the response does not
		// reveal whether the account exists.
		if unknownErr.Error() != wrongErr.Error() {
			t.Errorf("messages differ: %q vs %q", unknownErr.Error(), wrongErr.Error())
		}
	})
}

// stubCodec records the TTL it was asked to sign with.
type stubCodec struct {
	lastTTL time.Duration
	err     error
}

func (c *stubCodec) Encode(claims map[string]any, ttl time.Duration) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.lastTTL = ttl
	return fmt.Sprintf("token-for-%v", claims["email"]), nil
}

func (c *stubCodec) Decode(string) (map[string]any, error) {
	return nil, errors.New("not implemented")
}

func TestCreateAccessTokenHandler(t *testing.T) {
	t.Parallel()

	t.Run("SignsClaims", func(t *testing.T) {
		t.Parallel()

		codec := &stubCodec{}
		h := command.NewCreateAccessTokenHandler(codec, discard)

		token, err := h.Handle(context.Background(), command.CreateAccessToken{
			Claims: map[string]any{"email": "jdoe@example.com"},
			TTL:    time.Hour,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "token-for-jdoe@example.com" {
			t.Errorf("token = %q", token)
		}
		if codec.lastTTL != time.Hour {
			t.Errorf("TTL = %v, want 1h", codec.lastTTL)
		}
	})

	t.Run("ZeroTTLFallsBackToDefault", func(t *testing.T) {
		t.Parallel()

		codec := &stubCodec{}
		h := command.NewCreateAccessTokenHandler(codec, discard)

		if _, err := h.Handle(context.Background(), command.CreateAccessToken{
			Claims: map[string]any{"email": "jdoe@example.com"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if codec.lastTTL != command.DefaultAccessTokenTTL {
			t.Errorf("TTL = %v, want %v", codec.lastTTL, command.DefaultAccessTokenTTL)
		}
	})

	t.Run("SigningFailureSurfaces", func(t *testing.T) {
		t.Parallel()

		codec := &stubCodec{err: errors.New("bad key")}
		h := command.NewCreateAccessTokenHandler(codec, discard)

		if _, err := h.Handle(context.Background(), command.CreateAccessToken{TTL: time.Hour}); err == nil {
			t.Error("expected signing error to surface")
		}
	})
}
