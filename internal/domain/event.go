package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact about a state transition, produced by an
// entity operation and drained through Entity.PullEvents for publication.
// Payload fields carry primitive values only, never live entity references,
// so an event stays valid after the emitting entity mutates further.
type Event interface {
	// EventKind returns the stable kind tag used for handler registration
	// and broker routing (e.g. "task.completed").
	EventKind() string

	// EventID returns the unique identifier of this occurrence.
	EventID() string

	// OccurredAt returns the generation timestamp.
	OccurredAt() time.Time
}

// EventMeta carries the identity and timestamp every event shares. Concrete
// events embed it and add their payload fields.
type EventMeta struct {
	ID string    `json:"event_id"`
	At time.Time `json:"occurred_at"`
}

// NewEventMeta generates metadata for a fresh event occurrence.
func NewEventMeta() EventMeta {
	return EventMeta{
		ID: uuid.NewString(),
		At: time.Now().UTC(),
	}
}

// EventID implements Event.
func (m EventMeta) EventID() string { return m.ID }

// OccurredAt implements Event.
func (m EventMeta) OccurredAt() time.Time { return m.At }
