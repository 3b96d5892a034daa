package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"tasklane/internal/adapters/http/dto"
	"tasklane/internal/domain"
	"tasklane/internal/ports"
)

// Listing page defaults. Clients can override with ?limit= and ?offset=.
const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// parsePageFilter extracts limit/offset query parameters with defaults.
// Returns a *domain.ValidationError for non-numeric or negative values.
func parsePageFilter(r *http.Request) (ports.TaskFilter, error) {
	f := ports.TaskFilter{Limit: defaultPageLimit}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return f, &domain.ValidationError{
				Fields: map[string]string{"limit": "must be a positive integer"},
			}
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
		f.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return f, &domain.ValidationError{
				Fields: map[string]string{"offset": "must be a non-negative integer"},
			}
		}
		f.Offset = offset
	}

	return f, nil
}
