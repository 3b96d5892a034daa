// Package command holds the state-changing side of the mediator surface:
// one command type plus one handler per use case. Handlers validate input
// through value objects, drive the aggregates, persist through repository
// ports, and publish entity-pulled events. They never talk to the broker
// or the notifier directly.
package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tasklane/internal/domain"
	"tasklane/internal/domain/task"
	"tasklane/internal/mediator"
	"tasklane/internal/ports"
)

// requireUser loads a user by OID and converts absence into a not-found error.
func requireUser(ctx context.Context, users ports.UserRepository, oid string) error {
	u, err := users.GetByOID(ctx, oid)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return fmt.Errorf("user %s: %w", oid, domain.ErrNotFound)
	}
	return nil
}

// requireOwnedTask loads a task and enforces that userOID owns it.
func requireOwnedTask(ctx context.Context, tasks ports.TaskRepository, taskOID, userOID string) (*task.Task, error) {
	t, err := tasks.GetByOID(ctx, taskOID)
	if err != nil {
		return nil, fmt.Errorf("loading task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("task %s: %w", taskOID, domain.ErrNotFound)
	}
	if t.OwnerOID != userOID {
		return nil, fmt.Errorf("task %s does not belong to user %s: %w", taskOID, userOID, domain.ErrForbidden)
	}
	return t, nil
}

// CreateTask creates a task owned by UserOID.
type CreateTask struct {
	Title      string
	Body       string
	Importance int
	Deadline   time.Time
	UserOID    string
}

// CommandKind implements mediator.Command.
func (CreateTask) CommandKind() string { return "task.create" }

// CreateTaskHandler validates the owner exists, builds the value objects
// and the aggregate, persists it, and publishes the pulled events.
type CreateTaskHandler struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	publisher mediator.Publisher
	logger    *slog.Logger
}

// NewCreateTaskHandler creates a CreateTaskHandler.
func NewCreateTaskHandler(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	publisher mediator.Publisher,
	logger *slog.Logger,
) *CreateTaskHandler {
	return &CreateTaskHandler{tasks: tasks, users: users, publisher: publisher, logger: logger}
}

// Handle executes the command and returns the created task.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTask) (*task.Task, error) {
	h.logger.InfoContext(ctx, "creating task", slog.String("user_oid", cmd.UserOID))

	if err := requireUser(ctx, h.users, cmd.UserOID); err != nil {
		return nil, err
	}

	title, err := task.NewTitle(cmd.Title)
	if err != nil {
		return nil, err
	}
	body, err := task.NewBody(cmd.Body)
	if err != nil {
		return nil, err
	}
	importance, err := task.NewImportance(cmd.Importance)
	if err != nil {
		return nil, err
	}
	deadline, err := task.NewDeadline(cmd.Deadline)
	if err != nil {
		return nil, err
	}

	t := task.New(title, body, importance, deadline, cmd.UserOID)

	if err := h.tasks.Add(ctx, t); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist task",
			slog.String("operation", "CreateTask"),
			slog.String("task_oid", t.OID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("persisting task: %w", err)
	}

	if _, err := h.publisher.Publish(ctx, t.PullEvents()...); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish task events",
			slog.String("operation", "CreateTask"),
			slog.String("task_oid", t.OID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("publishing events: %w", err)
	}

	return t, nil
}

// CompleteTask marks a task done on behalf of UserOID.
type CompleteTask struct {
	TaskOID string
	UserOID string
}

// CommandKind implements mediator.Command.
func (CompleteTask) CommandKind() string { return "task.complete" }

// CompleteTaskHandler enforces ownership, completes the aggregate,
// persists the mutation, and publishes the pulled events.
type CompleteTaskHandler struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	publisher mediator.Publisher
	logger    *slog.Logger
}

// NewCompleteTaskHandler creates a CompleteTaskHandler.
func NewCompleteTaskHandler(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	publisher mediator.Publisher,
	logger *slog.Logger,
) *CompleteTaskHandler {
	return &CompleteTaskHandler{tasks: tasks, users: users, publisher: publisher, logger: logger}
}

// Handle executes the command and returns the completed task.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTask) (*task.Task, error) {
	h.logger.InfoContext(ctx, "completing task",
		slog.String("task_oid", cmd.TaskOID),
		slog.String("user_oid", cmd.UserOID),
	)

	if err := requireUser(ctx, h.users, cmd.UserOID); err != nil {
		return nil, err
	}

	t, err := requireOwnedTask(ctx, h.tasks, cmd.TaskOID, cmd.UserOID)
	if err != nil {
		return nil, err
	}

	t.Complete()

	if err := h.tasks.Save(ctx, t); err != nil {
		h.logger.ErrorContext(ctx, "failed to save task",
			slog.String("operation", "CompleteTask"),
			slog.String("task_oid", cmd.TaskOID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("saving task: %w", err)
	}

	if _, err := h.publisher.Publish(ctx, t.PullEvents()...); err != nil {
		return nil, fmt.Errorf("publishing events: %w", err)
	}

	return t, nil
}

// EditTask partially updates a task on behalf of UserOID. Nil fields pass
// through unchanged.
type EditTask struct {
	TaskOID    string
	UserOID    string
	Title      *string
	Body       *string
	Importance *int
	Deadline   *time.Time
}

// CommandKind implements mediator.Command.
func (EditTask) CommandKind() string { return "task.edit" }

// EditTaskHandler enforces ownership, builds value objects only for the
// supplied fields, applies the patch, persists, and publishes.
type EditTaskHandler struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	publisher mediator.Publisher
	logger    *slog.Logger
}

// NewEditTaskHandler creates an EditTaskHandler.
func NewEditTaskHandler(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	publisher mediator.Publisher,
	logger *slog.Logger,
) *EditTaskHandler {
	return &EditTaskHandler{tasks: tasks, users: users, publisher: publisher, logger: logger}
}

// Handle executes the command and returns the edited task.
func (h *EditTaskHandler) Handle(ctx context.Context, cmd EditTask) (*task.Task, error) {
	h.logger.InfoContext(ctx, "editing task",
		slog.String("task_oid", cmd.TaskOID),
		slog.String("user_oid", cmd.UserOID),
	)

	if err := requireUser(ctx, h.users, cmd.UserOID); err != nil {
		return nil, err
	}

	t, err := requireOwnedTask(ctx, h.tasks, cmd.TaskOID, cmd.UserOID)
	if err != nil {
		return nil, err
	}

	var patch task.Patch

	if cmd.Title != nil {
		title, err := task.NewTitle(*cmd.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if cmd.Body != nil {
		body, err := task.NewBody(*cmd.Body)
		if err != nil {
			return nil, err
		}
		patch.Body = &body
	}
	if cmd.Importance != nil {
		importance, err := task.NewImportance(*cmd.Importance)
		if err != nil {
			return nil, err
		}
		patch.Importance = &importance
	}
	if cmd.Deadline != nil {
		deadline, err := task.NewDeadline(*cmd.Deadline)
		if err != nil {
			return nil, err
		}
		patch.Deadline = &deadline
	}

	t.Edit(patch)

	if err := h.tasks.Save(ctx, t); err != nil {
		h.logger.ErrorContext(ctx, "failed to save task",
			slog.String("operation", "EditTask"),
			slog.String("task_oid", cmd.TaskOID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("saving task: %w", err)
	}

	if _, err := h.publisher.Publish(ctx, t.PullEvents()...); err != nil {
		return nil, fmt.Errorf("publishing events: %w", err)
	}

	return t, nil
}

// DeleteTask removes a task on behalf of UserOID.
type DeleteTask struct {
	TaskOID string
	UserOID string
}

// CommandKind implements mediator.Command.
func (DeleteTask) CommandKind() string { return "task.delete" }

// DeleteTaskHandler enforces ownership and deletes through the repository.
type DeleteTaskHandler struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger *slog.Logger
}

// NewDeleteTaskHandler creates a DeleteTaskHandler.
func NewDeleteTaskHandler(tasks ports.TaskRepository, users ports.UserRepository, logger *slog.Logger) *DeleteTaskHandler {
	return &DeleteTaskHandler{tasks: tasks, users: users, logger: logger}
}

// Handle executes the command.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTask) (struct{}, error) {
	h.logger.InfoContext(ctx, "deleting task",
		slog.String("task_oid", cmd.TaskOID),
		slog.String("user_oid", cmd.UserOID),
	)

	if err := requireUser(ctx, h.users, cmd.UserOID); err != nil {
		return struct{}{}, err
	}

	if _, err := requireOwnedTask(ctx, h.tasks, cmd.TaskOID, cmd.UserOID); err != nil {
		return struct{}{}, err
	}

	if err := h.tasks.Delete(ctx, cmd.TaskOID); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete task",
			slog.String("operation", "DeleteTask"),
			slog.String("task_oid", cmd.TaskOID),
			slog.Any("error", err),
		)
		return struct{}{}, fmt.Errorf("deleting task: %w", err)
	}

	return struct{}{}, nil
}
