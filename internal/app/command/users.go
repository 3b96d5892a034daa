package command

import (
	"context"
	"fmt"
	"log/slog"

	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
	"tasklane/internal/ports"
)

// CreateUser registers a new account.
type CreateUser struct {
	Username string
	Email    string
	Password string
}

// CommandKind implements mediator.Command.
func (CreateUser) CommandKind() string { return "user.create" }

// CreateUserHandler checks email uniqueness, hashes the password, builds
// the User aggregate, persists it, and publishes the pulled events.
type CreateUserHandler struct {
	users     ports.UserRepository
	hasher    ports.PasswordHasher
	publisher mediator.Publisher
	logger    *slog.Logger
}

// NewCreateUserHandler creates a CreateUserHandler.
func NewCreateUserHandler(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	publisher mediator.Publisher,
	logger *slog.Logger,
) *CreateUserHandler {
	return &CreateUserHandler{users: users, hasher: hasher, publisher: publisher, logger: logger}
}

// Handle executes the command and returns the created user.
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUser) (*user.User, error) {
	h.logger.InfoContext(ctx, "creating user", slog.String("email", cmd.Email))

	exists, err := h.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("user with email %q already exists: %w", cmd.Email, domain.ErrConflict)
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	username, err := user.NewUsername(cmd.Username)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	password, err := user.NewPassword(hash)
	if err != nil {
		return nil, err
	}

	u := user.New(username, email, password)

	if err := h.users.Add(ctx, u); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist user",
			slog.String("operation", "CreateUser"),
			slog.String("user_oid", u.OID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("persisting user: %w", err)
	}

	if _, err := h.publisher.Publish(ctx, u.PullEvents()...); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish user events",
			slog.String("operation", "CreateUser"),
			slog.String("user_oid", u.OID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("publishing events: %w", err)
	}

	return u, nil
}

// DeleteUser removes an account by OID.
type DeleteUser struct {
	UserOID string
}

// CommandKind implements mediator.Command.
func (DeleteUser) CommandKind() string { return "user.delete" }

// DeleteUserHandler loads the user and deletes it through the repository.
type DeleteUserHandler struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewDeleteUserHandler creates a DeleteUserHandler.
func NewDeleteUserHandler(users ports.UserRepository, logger *slog.Logger) *DeleteUserHandler {
	return &DeleteUserHandler{users: users, logger: logger}
}

// Handle executes the command.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUser) (struct{}, error) {
	h.logger.InfoContext(ctx, "deleting user", slog.String("user_oid", cmd.UserOID))

	u, err := h.users.GetByOID(ctx, cmd.UserOID)
	if err != nil {
		return struct{}{}, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return struct{}{}, fmt.Errorf("user %s: %w", cmd.UserOID, domain.ErrNotFound)
	}

	if err := h.users.Delete(ctx, cmd.UserOID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("operation", "DeleteUser"),
			slog.String("user_oid", cmd.UserOID),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("deleting user: %w", err)
	}

	return struct{}{}, nil
}

// EditUser partially updates an account. Nil fields pass through unchanged.
type EditUser struct {
	UserOID  string
	Username *string
	Email    *string
}

// CommandKind implements mediator.Command.
func (EditUser) CommandKind() string { return "user.edit" }

// EditUserHandler builds value objects only for the supplied fields and
// delegates to the repository's partial-update contract.
type EditUserHandler struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewEditUserHandler creates an EditUserHandler.
func NewEditUserHandler(users ports.UserRepository, logger *slog.Logger) *EditUserHandler {
	return &EditUserHandler{users: users, logger: logger}
}

// Handle executes the command and returns the user with the patch applied.
func (h *EditUserHandler) Handle(ctx context.Context, cmd EditUser) (*user.User, error) {
	h.logger.InfoContext(ctx, "editing user", slog.String("user_oid", cmd.UserOID))

	u, err := h.users.GetByOID(ctx, cmd.UserOID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", cmd.UserOID, domain.ErrNotFound)
	}

	var patch ports.UserPatch

	if cmd.Username != nil {
		username, err := user.NewUsername(*cmd.Username)
		if err != nil {
			return nil, err
		}
		patch.Username = &username
		u.Username = username
	}
	if cmd.Email != nil {
		email, err := user.NewEmail(*cmd.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
		u.Email = email
	}

	if err := h.users.Update(ctx, cmd.UserOID, patch); err != nil {
		h.logger.ErrorContext(ctx, "failed to update user",
			slog.String("operation", "EditUser"),
			slog.String("user_oid", cmd.UserOID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return u, nil
}
