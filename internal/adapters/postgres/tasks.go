package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasklane/internal/domain/task"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository persists tasks in the tasks table.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a TaskRepository over the pool.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Add implements ports.TaskRepository.
func (r *TaskRepository) Add(ctx context.Context, t *task.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (oid, created_at, title, body, importance, deadline, owner_oid, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.OID, t.CreatedAt, t.Title.String(), t.Body.String(),
		t.Importance.Int(), t.Deadline.Time(), t.OwnerOID, t.Completed,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// GetByOID implements ports.TaskRepository.
func (r *TaskRepository) GetByOID(ctx context.Context, oid string) (*task.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT oid, created_at, title, body, importance, deadline, owner_oid, completed
		 FROM tasks WHERE oid = $1`, oid)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting task: %w", err)
	}
	return t, nil
}

// ListByOwner implements ports.TaskRepository. Ordering matches the
// in-memory adapter: creation time, OID as tiebreaker. A non-positive
// limit means no limit.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerOID string, f ports.TaskFilter) ([]task.Task, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE owner_oid = $1`, ownerOID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	query := `SELECT oid, created_at, title, body, importance, deadline, owner_oid, completed
		 FROM tasks WHERE owner_oid = $1
		 ORDER BY created_at, oid
		 OFFSET $2`
	args := []any{ownerOID, f.Offset}
	if f.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}

	return tasks, total, nil
}

// Save implements ports.TaskRepository.
func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks
		 SET title = $2, body = $3, importance = $4, deadline = $5, completed = $6
		 WHERE oid = $1`,
		t.OID, t.Title.String(), t.Body.String(), t.Importance.Int(), t.Deadline.Time(), t.Completed,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

// Delete implements ports.TaskRepository.
func (r *TaskRepository) Delete(ctx context.Context, oid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE oid = $1`, oid); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		oid, title, body, ownerOID string
		importance                 int
		createdAt, deadline        time.Time
		completed                  bool
	)

	if err := row.Scan(&oid, &createdAt, &title, &body, &importance, &deadline, &ownerOID, &completed); err != nil {
		return nil, err
	}

	return task.Restore(oid, createdAt, title, body, importance, deadline, ownerOID, completed), nil
}
