package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/ports"
)

// DefaultAccessTokenTTL applies when CreateAccessToken carries no expiry.
const DefaultAccessTokenTTL = 15 * time.Minute

// AuthenticateUser verifies an email/password pair.
type AuthenticateUser struct {
	Email    string
	Password string
}

// CommandKind implements mediator.Command.
func (AuthenticateUser) CommandKind() string { return "auth.authenticate" }

// AuthenticateUserHandler loads the user by email and verifies the raw
// password against the stored hash. Both an unknown email and a wrong
// password surface as the same authorization error so the response does
// not leak which one was wrong.
type AuthenticateUserHandler struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logger *slog.Logger
}

// NewAuthenticateUserHandler creates an AuthenticateUserHandler.
func NewAuthenticateUserHandler(users ports.UserRepository, hasher ports.PasswordHasher, logger *slog.Logger) *AuthenticateUserHandler {
	return &AuthenticateUserHandler{users: users, hasher: hasher, logger: logger}
}

// Handle executes the command and returns the authenticated user.
func (h *AuthenticateUserHandler) Handle(ctx context.Context, cmd AuthenticateUser) (*user.User, error) {
	u, err := h.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("incorrect email or password: %w", domain.ErrUnauthorized)
	}

	if err := h.hasher.Verify(cmd.Password, u.Password.Hash()); err != nil {
		h.logger.InfoContext(ctx, "password verification failed", slog.String("user_oid", u.OID))
		return nil, fmt.Errorf("incorrect email or password: %w", domain.ErrUnauthorized)
	}

	return u, nil
}

// CreateAccessToken issues a signed, time-bounded token for the claims.
// A zero TTL falls back to DefaultAccessTokenTTL.
type CreateAccessToken struct {
	Claims map[string]any
	TTL    time.Duration
}

// CommandKind implements mediator.Command.
func (CreateAccessToken) CommandKind() string { return "auth.create_access_token" }

// CreateAccessTokenHandler delegates signing to the token codec port.
type CreateAccessTokenHandler struct {
	tokens ports.TokenCodec
	logger *slog.Logger
}

// NewCreateAccessTokenHandler creates a CreateAccessTokenHandler.
func NewCreateAccessTokenHandler(tokens ports.TokenCodec, logger *slog.Logger) *CreateAccessTokenHandler {
	return &CreateAccessTokenHandler{tokens: tokens, logger: logger}
}

// Handle executes the command and returns the signed token string.
func (h *CreateAccessTokenHandler) Handle(ctx context.Context, cmd CreateAccessToken) (string, error) {
	ttl := cmd.TTL
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}

	token, err := h.tokens.Encode(cmd.Claims, ttl)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sign access token",
			slog.String("operation", "CreateAccessToken"),
			slog.Any("error", err),
		)
		return "", fmt.Errorf("signing access token: %w", err)
	}

	return token, nil
}
