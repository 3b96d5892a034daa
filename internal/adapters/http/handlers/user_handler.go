package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tasklane/internal/adapters/http/dto"
	"tasklane/internal/adapters/http/middleware"
	"tasklane/internal/app/command"
	"tasklane/internal/app/query"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
)

// UserHandler handles HTTP requests for account operations. Everything is
// dispatched through the mediator; the handler only translates between
// HTTP and command/query types.
type UserHandler struct {
	m *mediator.Mediator
}

// NewUserHandler creates a new UserHandler over the mediator.
func NewUserHandler(m *mediator.Mediator) *UserHandler {
	return &UserHandler{m: m}
}

// CreateUser handles POST /api/v1/users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := mediator.Send[*user.User](r.Context(), h.m, command.CreateUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(created))
}

// GetUser handles GET /api/v1/users/{oid}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := mediator.Ask[*user.User](r.Context(), h.m, query.GetUserByOID{
		UserOID: chi.URLParam(r, "oid"),
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(u))
}

// GetCurrentUser handles GET /api/v1/users/me. The Auth middleware has
// already resolved the token.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, dto.ToUserResponse(u))
}

// UpdateCurrentUser handles PATCH /api/v1/users/me.
func (h *UserHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	u := middleware.UserFromContext(r.Context())

	updated, err := mediator.Send[*user.User](r.Context(), h.m, command.EditUser{
		UserOID:  u.OID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(updated))
}

// DeleteCurrentUser handles DELETE /api/v1/users/me.
func (h *UserHandler) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())

	if _, err := mediator.Send[struct{}](r.Context(), h.m, command.DeleteUser{UserOID: u.OID}); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
