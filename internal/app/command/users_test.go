package command_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"tasklane/internal/adapters/memory"
	"tasklane/internal/app/command"
	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
)

var discard = slog.New(slog.DiscardHandler)

// stubHasher avoids bcrypt cost in handler tests.
type stubHasher struct{}

func (stubHasher) Hash(raw string) (string, error) { return "hashed:" + raw, nil }

func (stubHasher) Verify(raw, hash string) error {
	if "hashed:"+raw != hash {
		return fmt.Errorf("password mismatch: %w", domain.ErrUnauthorized)
	}
	return nil
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.Event) ([]any, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.events = append(p.events, events...)
	return make([]any, len(events)), nil
}

var _ mediator.Publisher = (*recordingPublisher)(nil)

func seedUser(t *testing.T, users *memory.UserRepository, email string) *user.User {
	t.Helper()

	h := command.NewCreateUserHandler(users, stubHasher{}, &recordingPublisher{}, discard)
	u, err := h.Handle(context.Background(), command.CreateUser{
		Username: "tester",
		Email:    email,
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return u
}

func TestCreateUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("PersistsAndPublishes", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		pub := &recordingPublisher{}
		h := command.NewCreateUserHandler(users, stubHasher{}, pub, discard)

		u, err := h.Handle(context.Background(), command.CreateUser{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "hunter2",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if u.Username.String() != "jdoe" {
			t.Errorf("Username = %q, want %q", u.Username.String(), "jdoe")
		}
		if u.Password.Hash() != "hashed:hunter2" {
			t.Errorf("stored hash = %q, want the hashed password", u.Password.Hash())
		}

		stored, err := users.GetByEmail(context.Background(), "jdoe@example.com")
		if err != nil || stored == nil {
			t.Fatalf("user not persisted: %v", err)
		}

		if len(pub.events) != 1 {
			t.Fatalf("published %d events, want 1", len(pub.events))
		}
		if pub.events[0].EventKind() != user.KindCreated {
			t.Errorf("EventKind() = %q, want %q", pub.events[0].EventKind(), user.KindCreated)
		}
	})

	t.Run("DuplicateEmailConflict", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		seedUser(t, users, "dup@example.com")

		h := command.NewCreateUserHandler(users, stubHasher{}, &recordingPublisher{}, discard)
		_, err := h.Handle(context.Background(), command.CreateUser{
			Username: "other",
			Email:    "dup@example.com",
			Password: "hunter2",
		})
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("error = %v, want ErrConflict", err)
		}
	})

	t.Run("InvalidEmailValidation", func(t *testing.T) {
		t.Parallel()

		h := command.NewCreateUserHandler(memory.NewUserRepository(), stubHasher{}, &recordingPublisher{}, discard)
		_, err := h.Handle(context.Background(), command.CreateUser{
			Username: "jdoe",
			Email:    "not-an-address",
			Password: "hunter2",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("PublishFailureSurfaces", func(t *testing.T) {
		t.Parallel()

		pub := &recordingPublisher{err: errors.New("broker down")}
		h := command.NewCreateUserHandler(memory.NewUserRepository(), stubHasher{}, pub, discard)

		_, err := h.Handle(context.Background(), command.CreateUser{
			Username: "jdoe",
			Email:    "jdoe@example.com",
			Password: "hunter2",
		})
		if err == nil {
			t.Error("expected publish failure to surface")
		}
	})
}

func TestDeleteUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("RemovesUser", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		u := seedUser(t, users, "gone@example.com")

		h := command.NewDeleteUserHandler(users, discard)
		if _, err := h.Handle(context.Background(), command.DeleteUser{UserOID: u.OID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := users.GetByOID(context.Background(), u.OID)
		if err != nil {
			t.Fatalf("GetByOID: %v", err)
		}
		if stored != nil {
			t.Error("expected user to be deleted")
		}
	})

	t.Run("AbsentUserNotFound", func(t *testing.T) {
		t.Parallel()

		h := command.NewDeleteUserHandler(memory.NewUserRepository(), discard)
		_, err := h.Handle(context.Background(), command.DeleteUser{UserOID: "missing"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestEditUserHandler(t *testing.T) {
	t.Parallel()

	t.Run("PartialUpdate", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		u := seedUser(t, users, "edit@example.com")

		newName := "renamed"
		h := command.NewEditUserHandler(users, discard)
		edited, err := h.Handle(context.Background(), command.EditUser{
			UserOID:  u.OID,
			Username: &newName,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if edited.Username.String() != "renamed" {
			t.Errorf("Username = %q, want %q", edited.Username.String(), "renamed")
		}
		// Unset field passes through.
		if edited.Email.String() != "edit@example.com" {
			t.Errorf("Email = %q, want unchanged", edited.Email.String())
		}

		stored, _ := users.GetByOID(context.Background(), u.OID)
		if stored.Username.String() != "renamed" {
			t.Errorf("persisted Username = %q, want %q", stored.Username.String(), "renamed")
		}
	})

	t.Run("InvalidFieldValidation", func(t *testing.T) {
		t.Parallel()

		users := memory.NewUserRepository()
		u := seedUser(t, users, "edit2@example.com")

		badEmail := "nope"
		h := command.NewEditUserHandler(users, discard)
		_, err := h.Handle(context.Background(), command.EditUser{UserOID: u.OID, Email: &badEmail})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("AbsentUserNotFound", func(t *testing.T) {
		t.Parallel()

		h := command.NewEditUserHandler(memory.NewUserRepository(), discard)
		_, err := h.Handle(context.Background(), command.EditUser{UserOID: "missing"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
