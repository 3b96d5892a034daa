package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tasklane/internal/adapters/http/dto"
	"tasklane/internal/app/query"
	"tasklane/internal/domain"
	"tasklane/internal/domain/user"
	"tasklane/internal/mediator"
)

// userKey is the unexported context key for the authenticated user.
type userKey struct{}

// UserFromContext extracts the authenticated user stored by Auth. It
// returns nil when the request did not pass through the middleware.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey{}).(*user.User)
	return u
}

// Auth returns middleware that resolves the bearer token to the account
// it identifies and stores the user in the request context. Requests
// without a valid token are rejected with a 401 problem response.
//
// Resolution goes through the mediator so it follows the exact same path
// as any other current-user lookup.
func Auth(m *mediator.Mediator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				dto.WriteErrorResponse(w, r,
					fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized))
				return
			}

			u, err := mediator.Ask[*user.User](r.Context(), m, query.GetCurrentUser{Token: token})
			if err != nil {
				dto.WriteErrorResponse(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}
