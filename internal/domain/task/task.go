// Package task holds the Task aggregate, its value objects, and the
// events it emits.
package task

import (
	"time"

	"tasklane/internal/domain"
)

// Task is a single todo item owned by one user. Mutations go through
// Complete and Edit, which register exactly one event per actual state
// transition.
type Task struct {
	domain.Entity

	Title      Title
	Body       Body
	Importance Importance
	Deadline   Deadline
	OwnerOID   string
	Completed  bool
}

// New builds a Task from validated value objects and registers the
// corresponding Created event.
func New(title Title, body Body, importance Importance, deadline Deadline, ownerOID string) *Task {
	t := &Task{
		Entity:     domain.NewEntity(),
		Title:      title,
		Body:       body,
		Importance: importance,
		Deadline:   deadline,
		OwnerOID:   ownerOID,
	}

	t.RegisterEvent(Created{
		EventMeta:  domain.NewEventMeta(),
		TaskOID:    t.OID,
		OwnerOID:   ownerOID,
		Title:      title.String(),
		Importance: importance.Int(),
	})

	return t
}

// Restore rebuilds a Task from persisted state. The stored values were
// validated when first constructed, so validation is not repeated and no
// event is registered.
func Restore(oid string, createdAt time.Time, title, body string, importance int, deadline time.Time, ownerOID string, completed bool) *Task {
	return &Task{
		Entity:     domain.RestoreEntity(oid, createdAt),
		Title:      Title{value: title},
		Body:       Body{value: body},
		Importance: Importance{value: importance},
		Deadline:   Deadline{value: deadline},
		OwnerOID:   ownerOID,
		Completed:  completed,
	}
}

// Complete marks the task done and registers a Completed event. Calling it
// on an already-completed task is a no-op: no state change, no event.
func (t *Task) Complete() {
	if t.Completed {
		return
	}
	t.Completed = true

	t.RegisterEvent(Completed{
		EventMeta: domain.NewEventMeta(),
		TaskOID:   t.OID,
		OwnerOID:  t.OwnerOID,
	})
}

// Patch carries the optional replacement values for Edit. Nil fields are
// left untouched.
type Patch struct {
	Title      *Title
	Body       *Body
	Importance *Importance
	Deadline   *Deadline
}

// Edit applies the supplied fields and registers a single Edited event
// when at least one field was set. An empty patch changes nothing and
// emits nothing.
func (t *Task) Edit(p Patch) {
	changed := false

	if p.Title != nil {
		t.Title = *p.Title
		changed = true
	}
	if p.Body != nil {
		t.Body = *p.Body
		changed = true
	}
	if p.Importance != nil {
		t.Importance = *p.Importance
		changed = true
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
		changed = true
	}

	if !changed {
		return
	}

	t.RegisterEvent(Edited{
		EventMeta:  domain.NewEventMeta(),
		TaskOID:    t.OID,
		OwnerOID:   t.OwnerOID,
		Title:      t.Title.String(),
		Importance: t.Importance.Int(),
		Deadline:   t.Deadline.Time(),
	})
}
