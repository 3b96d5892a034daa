package task

import (
	"time"

	"tasklane/internal/domain"
)

// Event kind tags for the task aggregate.
const (
	KindCreated   = "task.created"
	KindCompleted = "task.completed"
	KindEdited    = "task.edited"
)

// Created is emitted by the New factory once per task.
type Created struct {
	domain.EventMeta

	TaskOID    string `json:"task_oid"`
	OwnerOID   string `json:"owner_oid"`
	Title      string `json:"title"`
	Importance int    `json:"importance"`
}

// EventKind implements domain.Event.
func (Created) EventKind() string { return KindCreated }

// Completed is emitted by Complete when the task transitions to done.
// Completing an already-completed task emits nothing.
type Completed struct {
	domain.EventMeta

	TaskOID  string `json:"task_oid"`
	OwnerOID string `json:"owner_oid"`
}

// EventKind implements domain.Event.
func (Completed) EventKind() string { return KindCompleted }

// Edited is emitted by Edit when at least one field changed.
type Edited struct {
	domain.EventMeta

	TaskOID    string    `json:"task_oid"`
	OwnerOID   string    `json:"owner_oid"`
	Title      string    `json:"title"`
	Importance int       `json:"importance"`
	Deadline   time.Time `json:"deadline"`
}

// EventKind implements domain.Event.
func (Edited) EventKind() string { return KindEdited }
