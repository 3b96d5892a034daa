package handlers

import (
	"net/http"
	"time"

	"tasklane/internal/adapters/http/dto"
	"tasklane/internal/app/command"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
)

// AuthHandler handles the token endpoint.
type AuthHandler struct {
	m   *mediator.Mediator
	ttl time.Duration
}

// NewAuthHandler creates a new AuthHandler. A non-positive ttl falls back
// to the command layer's default.
func NewAuthHandler(m *mediator.Mediator, ttl time.Duration) *AuthHandler {
	return &AuthHandler{m: m, ttl: ttl}
}

// CreateToken handles POST /api/v1/auth/token. Credentials are verified
// first; the token carries the account email as its subject claim.
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u, err := mediator.Send[*user.User](r.Context(), h.m, command.AuthenticateUser{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	token, err := mediator.Send[string](r.Context(), h.m, command.CreateAccessToken{
		Claims: map[string]any{"email": u.Email.String(), "sub": u.OID},
		TTL:    h.ttl,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
