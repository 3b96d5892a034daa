package query

import (
	"context"
	"fmt"
	"log/slog"

	"tasklane/internal/domain"
	"tasklane/internal/domain/task"
	"tasklane/internal/ports"
)

// ListTasks fetches one page of a user's tasks.
type ListTasks struct {
	UserOID string
	Filter  ports.TaskFilter
}

// QueryKind implements mediator.Query.
func (ListTasks) QueryKind() string { return "task.list" }

// TaskPage is one page of tasks plus the total count across all pages.
type TaskPage struct {
	Tasks []task.Task
	Total int
}

// ListTasksHandler validates the user exists and returns a page. A user
// with zero tasks gets an empty page, not an error: "no tasks yet" is a
// normal state for a new account.
type ListTasksHandler struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger *slog.Logger
}

// NewListTasksHandler creates a ListTasksHandler.
func NewListTasksHandler(tasks ports.TaskRepository, users ports.UserRepository, logger *slog.Logger) *ListTasksHandler {
	return &ListTasksHandler{tasks: tasks, users: users, logger: logger}
}

// Handle executes the query.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasks) (*TaskPage, error) {
	u, err := h.users.GetByOID(ctx, q.UserOID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", q.UserOID, domain.ErrNotFound)
	}

	tasks, total, err := h.tasks.ListByOwner(ctx, q.UserOID, q.Filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListTasks"),
			slog.String("user_oid", q.UserOID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("listing tasks: %w", err)
	}

	return &TaskPage{Tasks: tasks, Total: total}, nil
}

// GetTaskByOID fetches a single task visible to UserOID. Ownership is not
// enforced here; only the mutating commands deny access.
type GetTaskByOID struct {
	UserOID string
	TaskOID string
}

// QueryKind implements mediator.Query.
func (GetTaskByOID) QueryKind() string { return "task.get_by_oid" }

// GetTaskByOIDHandler validates the user exists and loads the task.
type GetTaskByOIDHandler struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger *slog.Logger
}

// NewGetTaskByOIDHandler creates a GetTaskByOIDHandler.
func NewGetTaskByOIDHandler(tasks ports.TaskRepository, users ports.UserRepository, logger *slog.Logger) *GetTaskByOIDHandler {
	return &GetTaskByOIDHandler{tasks: tasks, users: users, logger: logger}
}

// Handle executes the query.
func (h *GetTaskByOIDHandler) Handle(ctx context.Context, q GetTaskByOID) (*task.Task, error) {
	u, err := h.users.GetByOID(ctx, q.UserOID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", q.UserOID, domain.ErrNotFound)
	}

	t, err := h.tasks.GetByOID(ctx, q.TaskOID)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", q.TaskOID, domain.ErrNotFound)
	}

	return t, nil
}
