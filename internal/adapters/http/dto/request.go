package dto

import (
	"strings"
	"time"

	"tasklane/internal/domain"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// CreateUserRequest represents the JSON body for registering a new account.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that required fields are present. Value-level rules
// (lengths, email shape) are enforced by the domain value objects.
func (r *CreateUserRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		fields["username"] = msgRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if r.Password == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateUserRequest represents the JSON body for updating an account.
// All fields are optional; nil means "do not change this field".
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateUserRequest) Validate() error {
	fields := make(map[string]string)

	if r.Username != nil && strings.TrimSpace(*r.Username) == "" {
		fields["username"] = msgMustNotEmpty
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		fields["email"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// TokenRequest represents the JSON body for the token endpoint.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that required fields are present.
func (r *TokenRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if r.Password == "" {
		fields["password"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a new task.
type CreateTaskRequest struct {
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Importance int       `json:"importance"`
	Deadline   time.Time `json:"deadline"`
}

// Validate checks that required fields are present. Range rules are
// enforced by the domain value objects.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if r.Deadline.IsZero() {
		fields["deadline"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateTaskRequest represents the JSON body for updating an existing task.
// All fields are optional; nil means "do not change this field".
type UpdateTaskRequest struct {
	Title      *string    `json:"title,omitempty"`
	Body       *string    `json:"body,omitempty"`
	Importance *int       `json:"importance,omitempty"`
	Deadline   *time.Time `json:"deadline,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		fields["title"] = msgMustNotEmpty
	}
	if r.Deadline != nil && r.Deadline.IsZero() {
		fields["deadline"] = msgMustNotEmpty
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// BulkCompleteTasksRequest represents the JSON body for completing several
// tasks in one request.
type BulkCompleteTasksRequest struct {
	TaskOIDs []string `json:"task_oids"`
}

// Validate checks that at least one OID was supplied.
func (r *BulkCompleteTasksRequest) Validate() error {
	if len(r.TaskOIDs) == 0 {
		return &domain.ValidationError{Fields: map[string]string{"task_oids": msgMustNotEmpty}}
	}
	return nil
}
