// Package domain holds the building blocks shared by all aggregates:
// sentinel error kinds, the entity base with its pending-event buffer,
// and the domain event contract.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base embedded by every aggregate. It owns the opaque
// identifier, the creation timestamp, and the buffer of pending domain
// events. The buffer is exclusive to the single request mutating the
// entity; no locking is applied.
type Entity struct {
	OID       string
	CreatedAt time.Time

	events []Event
}

// NewEntity creates an entity base with a generated OID and the current
// UTC timestamp.
func NewEntity() Entity {
	return Entity{
		OID:       uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// RestoreEntity rebuilds an entity base from persisted state. No events
// are registered; rehydration is not a state transition.
func RestoreEntity(oid string, createdAt time.Time) Entity {
	return Entity{OID: oid, CreatedAt: createdAt}
}

// RegisterEvent appends an event to the pending buffer. It performs no
// validation; the aggregate decides when a transition warrants an event.
func (e *Entity) RegisterEvent(evt Event) {
	e.events = append(e.events, evt)
}

// PullEvents returns the pending events in registration order and clears
// the buffer, so each event is delivered at most once per mutation call.
// A second pull without new registrations returns an empty slice.
func (e *Entity) PullEvents() []Event {
	pulled := make([]Event, len(e.events))
	copy(pulled, e.events)
	e.events = nil
	return pulled
}
