// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tasklane/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Global middleware is applied in the order given; authn wraps only the
// routes that act on behalf of an account.
func NewRouter(
	userHandler *handlers.UserHandler,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
	authn func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Public surface: registration, token issuance, account lookup.
		r.Post("/users", userHandler.CreateUser)
		r.Post("/auth/token", authHandler.CreateToken)

		// Account routes acting on the authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/users/me", userHandler.GetCurrentUser)
			r.Patch("/users/me", userHandler.UpdateCurrentUser)
			r.Delete("/users/me", userHandler.DeleteCurrentUser)

			// Task CRUD plus completion.
			r.Get("/tasks", taskHandler.ListTasks)
			r.Post("/tasks", taskHandler.CreateTask)
			r.Post("/tasks/bulk/complete", taskHandler.BulkCompleteTasks)
			r.Get("/tasks/{oid}", taskHandler.GetTask)
			r.Patch("/tasks/{oid}", taskHandler.UpdateTask)
			r.Delete("/tasks/{oid}", taskHandler.DeleteTask)
			r.Post("/tasks/{oid}/complete", taskHandler.CompleteTask)
		})

		// Lookup by OID comes last so /users/me wins.
		r.Get("/users/{oid}", userHandler.GetUser)
	})

	return r
}
