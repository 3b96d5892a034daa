// Package query holds the read side of the mediator surface: one query
// type plus one handler per lookup. Handlers load through repository
// ports and convert absence into typed not-found or authorization errors.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/ports"
)

// GetUserByOID looks a user up by identifier.
type GetUserByOID struct {
	UserOID string
}

// QueryKind implements mediator.Query.
func (GetUserByOID) QueryKind() string { return "user.get_by_oid" }

// GetUserByOIDHandler is a straight repository lookup.
type GetUserByOIDHandler struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewGetUserByOIDHandler creates a GetUserByOIDHandler.
func NewGetUserByOIDHandler(users ports.UserRepository, logger *slog.Logger) *GetUserByOIDHandler {
	return &GetUserByOIDHandler{users: users, logger: logger}
}

// Handle executes the query.
func (h *GetUserByOIDHandler) Handle(ctx context.Context, q GetUserByOID) (*user.User, error) {
	u, err := h.users.GetByOID(ctx, q.UserOID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", q.UserOID, domain.ErrNotFound)
	}
	return u, nil
}

// GetUserByEmail looks a user up by email.
type GetUserByEmail struct {
	Email string
}

// QueryKind implements mediator.Query.
func (GetUserByEmail) QueryKind() string { return "user.get_by_email" }

// GetUserByEmailHandler is a straight repository lookup.
type GetUserByEmailHandler struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// NewGetUserByEmailHandler creates a GetUserByEmailHandler.
func NewGetUserByEmailHandler(users ports.UserRepository, logger *slog.Logger) *GetUserByEmailHandler {
	return &GetUserByEmailHandler{users: users, logger: logger}
}

// Handle executes the query.
func (h *GetUserByEmailHandler) Handle(ctx context.Context, q GetUserByEmail) (*user.User, error) {
	u, err := h.users.GetByEmail(ctx, q.Email)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user with email %q: %w", q.Email, domain.ErrNotFound)
	}
	return u, nil
}

// GetCurrentUser resolves a bearer token to the account it identifies.
type GetCurrentUser struct {
	Token string
}

// QueryKind implements mediator.Query.
func (GetCurrentUser) QueryKind() string { return "auth.current_user" }

// GetCurrentUserHandler decodes and verifies the token, extracts the
// email claim, and loads the user. Every failure mode collapses into the
// same credentials error.
type GetCurrentUserHandler struct {
	users  ports.UserRepository
	tokens ports.TokenCodec
	logger *slog.Logger
}

// NewGetCurrentUserHandler creates a GetCurrentUserHandler.
func NewGetCurrentUserHandler(users ports.UserRepository, tokens ports.TokenCodec, logger *slog.Logger) *GetCurrentUserHandler {
	return &GetCurrentUserHandler{users: users, tokens: tokens, logger: logger}
}

// Handle executes the query and returns the authenticated user.
func (h *GetCurrentUserHandler) Handle(ctx context.Context, q GetCurrentUser) (*user.User, error) {
	credentialsErr := fmt.Errorf("could not validate credentials: %w", domain.ErrUnauthorized)

	claims, err := h.tokens.Decode(q.Token)
	if err != nil {
		h.logger.InfoContext(ctx, "token rejected", slog.Any("error", err))
		return nil, credentialsErr
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, credentialsErr
	}

	u, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, credentialsErr
	}

	return u, nil
}
