package command

import (
	"context"
	"log/slog"

	"tasklane/internal/app/fanout"
	"tasklane/internal/domain/task"
	"tasklane/internal/mediator"
)

// defaultBulkWorkers bounds the goroutines used per bulk command.
const defaultBulkWorkers = 4

// BulkCompleteTasks completes several tasks in one request with partial
// success semantics: each completion succeeds or fails independently.
type BulkCompleteTasks struct {
	TaskOIDs []string
	UserOID  string
}

// CommandKind implements mediator.Command.
func (BulkCompleteTasks) CommandKind() string { return "task.bulk_complete" }

// BulkError records one failed completion within a bulk command.
type BulkError struct {
	TaskOID string
	Err     error
}

// BulkCompleteResult holds the outcomes of a bulk completion.
type BulkCompleteResult struct {
	Completed []task.Task
	Errors    []BulkError
}

// BulkCompleteTasksHandler fans one CompleteTask command per OID back
// through the mediator with bounded concurrency, so every completion
// follows the exact single-task path (ownership check, idempotency
// guard, event publication).
type BulkCompleteTasksHandler struct {
	m          *mediator.Mediator
	maxWorkers int
	logger     *slog.Logger
}

// NewBulkCompleteTasksHandler creates a BulkCompleteTasksHandler.
// maxWorkers values below 1 fall back to the default.
func NewBulkCompleteTasksHandler(m *mediator.Mediator, maxWorkers int, logger *slog.Logger) *BulkCompleteTasksHandler {
	if maxWorkers < 1 {
		maxWorkers = defaultBulkWorkers
	}
	return &BulkCompleteTasksHandler{m: m, maxWorkers: maxWorkers, logger: logger}
}

// Handle executes the command.
func (h *BulkCompleteTasksHandler) Handle(ctx context.Context, cmd BulkCompleteTasks) (*BulkCompleteResult, error) {
	h.logger.InfoContext(ctx, "bulk completing tasks",
		slog.String("user_oid", cmd.UserOID),
		slog.Int("count", len(cmd.TaskOIDs)),
	)

	results := fanout.Run(ctx, h.maxWorkers, cmd.TaskOIDs,
		func(ctx context.Context, taskOID string) (*task.Task, error) {
			return mediator.Send[*task.Task](ctx, h.m, CompleteTask{
				TaskOID: taskOID,
				UserOID: cmd.UserOID,
			})
		})

	out := &BulkCompleteResult{}
	for i, res := range results {
		if res.Err != nil {
			out.Errors = append(out.Errors, BulkError{TaskOID: cmd.TaskOIDs[i], Err: res.Err})
			continue
		}
		out.Completed = append(out.Completed, *res.Value)
	}

	return out, nil
}
