package task

import (
	"fmt"
	"time"
	"unicode/utf8"

	"tasklane/internal/domain"
)

// Value object constraints.
const (
	MaxTitleLen = 80
	MaxBodyLen  = 4000

	MinImportance = 1
	MaxImportance = 10
)

// Title is a validated task title.
type Title struct {
	value string
}

// NewTitle validates and wraps a raw title.
func NewTitle(raw string) (Title, error) {
	if raw == "" {
		return Title{}, domain.NewValidationError("title", domain.MsgRequired)
	}
	if utf8.RuneCountInString(raw) > MaxTitleLen {
		return Title{}, domain.NewValidationError("title",
			fmt.Sprintf("must be at most %d characters", MaxTitleLen))
	}
	return Title{value: raw}, nil
}

func (t Title) String() string { return t.value }

// Body is the validated task description text.
type Body struct {
	value string
}

// NewBody validates and wraps a raw task body.
func NewBody(raw string) (Body, error) {
	if raw == "" {
		return Body{}, domain.NewValidationError("body", domain.MsgRequired)
	}
	if utf8.RuneCountInString(raw) > MaxBodyLen {
		return Body{}, domain.NewValidationError("body",
			fmt.Sprintf("must be at most %d characters", MaxBodyLen))
	}
	return Body{value: raw}, nil
}

func (b Body) String() string { return b.value }

// Importance ranks a task from MinImportance to MaxImportance inclusive.
type Importance struct {
	value int
}

// NewImportance validates and wraps a raw importance rank.
func NewImportance(raw int) (Importance, error) {
	if raw < MinImportance || raw > MaxImportance {
		return Importance{}, domain.NewValidationError("importance",
			fmt.Sprintf("must be between %d and %d, got %d", MinImportance, MaxImportance, raw))
	}
	return Importance{value: raw}, nil
}

// Int returns the rank as a plain integer.
func (i Importance) Int() int { return i.value }

// Deadline is the point in time a task should be completed by. A deadline
// in the past cannot be set.
type Deadline struct {
	value time.Time
}

// NewDeadline validates and wraps a raw deadline.
func NewDeadline(raw time.Time) (Deadline, error) {
	if raw.IsZero() {
		return Deadline{}, domain.NewValidationError("deadline", domain.MsgRequired)
	}
	if raw.Before(time.Now()) {
		return Deadline{}, domain.NewValidationError("deadline", "must not be in the past")
	}
	return Deadline{value: raw.UTC()}, nil
}

// Time returns the deadline as a time.Time in UTC.
func (d Deadline) Time() time.Time { return d.value }
