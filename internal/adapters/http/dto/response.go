// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"tasklane/internal/app/command"
	"tasklane/internal/app/query"
	"tasklane/internal/domain/task"
	"tasklane/internal/domain/user"
)

// UserResponse represents a single user in HTTP responses. The password
// hash never leaves the domain layer.
type UserResponse struct {
	OID       string `json:"oid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ToUserResponse converts a domain User aggregate to an HTTP response DTO.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		OID:       u.OID,
		Username:  u.Username.String(),
		Email:     u.Email.String(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	OID        string `json:"oid"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Importance int    `json:"importance"`
	Deadline   string `json:"deadline"`
	OwnerOID   string `json:"owner_oid"`
	Completed  bool   `json:"completed"`
	CreatedAt  string `json:"created_at"`
}

// ToTaskResponse converts a domain Task aggregate to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		OID:        t.OID,
		Title:      t.Title.String(),
		Body:       t.Body.String(),
		Importance: t.Importance.Int(),
		Deadline:   t.Deadline.Time().Format(time.RFC3339),
		OwnerOID:   t.OwnerOID,
		Completed:  t.Completed,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
}

// TaskListResponse represents one page of tasks plus the total count
// across all pages. An empty page is a valid response, not an error.
type TaskListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToTaskListResponse converts a query.TaskPage to an HTTP list response DTO.
func ToTaskListResponse(page *query.TaskPage, limit, offset int) TaskListResponse {
	items := make([]TaskResponse, len(page.Tasks))
	for i := range page.Tasks {
		items[i] = ToTaskResponse(&page.Tasks[i])
	}
	return TaskListResponse{
		Tasks:  items,
		Count:  len(items),
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	}
}

// BulkCompleteTasksResponse represents the result of a bulk completion.
// It includes both completed tasks and per-item errors.
type BulkCompleteTasksResponse struct {
	Completed []TaskResponse  `json:"completed"`
	Errors    []BulkErrorItem `json:"errors"`
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

// BulkErrorItem represents a single failed completion within a bulk
// operation.
type BulkErrorItem struct {
	TaskOID string `json:"task_oid"`
	Message string `json:"message"`
}

// ToBulkCompleteResponse converts a command.BulkCompleteResult to an HTTP
// response DTO.
func ToBulkCompleteResponse(result *command.BulkCompleteResult) BulkCompleteTasksResponse {
	completed := make([]TaskResponse, len(result.Completed))
	for i := range result.Completed {
		completed[i] = ToTaskResponse(&result.Completed[i])
	}

	errs := make([]BulkErrorItem, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = BulkErrorItem{
			TaskOID: e.TaskOID,
			Message: e.Err.Error(),
		}
	}

	return BulkCompleteTasksResponse{
		Completed: completed,
		Errors:    errs,
		Total:     len(result.Completed) + len(result.Errors),
		Succeeded: len(result.Completed),
		Failed:    len(result.Errors),
	}
}
