package memory

import (
	"context"
	"sort"
	"sync"

	"tasklane/internal/domain/task"
	"tasklane/internal/ports"
)

// Compile-time check.
var _ ports.TaskRepository = (*TaskRepository)(nil)

// TaskRepository stores tasks keyed by OID.
type TaskRepository struct {
	mu    sync.RWMutex
	byOID map[string]task.Task
}

// NewTaskRepository creates an empty TaskRepository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{byOID: make(map[string]task.Task)}
}

// taskSnapshot copies the persistent fields only. The pending-event
// buffer stays with the caller's aggregate; a reloaded task must never
// carry events from an earlier request.
func taskSnapshot(t *task.Task) task.Task {
	return *task.Restore(t.OID, t.CreatedAt, t.Title.String(), t.Body.String(),
		t.Importance.Int(), t.Deadline.Time(), t.OwnerOID, t.Completed)
}

// Add implements ports.TaskRepository.
func (r *TaskRepository) Add(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byOID[t.OID] = taskSnapshot(t)
	return nil
}

// GetByOID implements ports.TaskRepository.
func (r *TaskRepository) GetByOID(_ context.Context, oid string) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byOID[oid]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// ListByOwner implements ports.TaskRepository. Tasks come back ordered by
// creation time (OID as tiebreaker); a non-positive limit means no limit.
func (r *TaskRepository) ListByOwner(_ context.Context, ownerOID string, f ports.TaskFilter) ([]task.Task, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []task.Task
	for _, t := range r.byOID {
		if t.OwnerOID == ownerOID {
			owned = append(owned, t)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].OID < owned[j].OID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})

	total := len(owned)

	if f.Offset > 0 {
		if f.Offset >= total {
			return []task.Task{}, total, nil
		}
		owned = owned[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(owned) {
		owned = owned[:f.Limit]
	}

	return owned, total, nil
}

// Save implements ports.TaskRepository.
func (r *TaskRepository) Save(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byOID[t.OID] = taskSnapshot(t)
	return nil
}

// Delete implements ports.TaskRepository.
func (r *TaskRepository) Delete(_ context.Context, oid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byOID, oid)
	return nil
}
