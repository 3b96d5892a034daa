package task_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tasklane/internal/domain"
	"tasklane/internal/domain/task"
)

func TestNewTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "Valid", raw: "write the report"},
		{name: "MaxLength", raw: strings.Repeat("a", task.MaxTitleLen)},
		{name: "Empty", raw: "", wantErr: true},
		{name: "TooLong", raw: strings.Repeat("a", task.MaxTitleLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title, err := task.NewTitle(tt.raw)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if title.String() != tt.raw {
				t.Errorf("String() = %q, want %q", title.String(), tt.raw)
			}
		})
	}
}

func TestNewTitle_CountsRunesNotBytes(t *testing.T) {
	t.Parallel()

	// 80 multibyte runes are within the limit even though the byte count
	// exceeds it.
	raw := strings.Repeat("ä", task.MaxTitleLen)
	if _, err := task.NewTitle(raw); err != nil {
		t.Errorf("unexpected error for %d-rune title: %v", task.MaxTitleLen, err)
	}
}

func TestNewBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "Valid", raw: "collect the quarterly numbers"},
		{name: "MaxLength", raw: strings.Repeat("b", task.MaxBodyLen)},
		{name: "Empty", raw: "", wantErr: true},
		{name: "TooLong", raw: strings.Repeat("b", task.MaxBodyLen+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := task.NewBody(tt.raw)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if body.String() != tt.raw {
				t.Errorf("String() length = %d, want %d", len(body.String()), len(tt.raw))
			}
		})
	}
}

func TestNewImportance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     int
		wantErr bool
	}{
		{name: "Lowest", raw: task.MinImportance},
		{name: "Highest", raw: task.MaxImportance},
		{name: "Middle", raw: 5},
		{name: "Zero", raw: 0, wantErr: true},
		{name: "Negative", raw: -3, wantErr: true},
		{name: "AboveMax", raw: task.MaxImportance + 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			importance, err := task.NewImportance(tt.raw)

			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if importance.Int() != tt.raw {
				t.Errorf("Int() = %d, want %d", importance.Int(), tt.raw)
			}
		})
	}
}

func TestNewDeadline(t *testing.T) {
	t.Parallel()

	t.Run("Future", func(t *testing.T) {
		t.Parallel()

		future := time.Now().Add(48 * time.Hour)
		d, err := task.NewDeadline(future)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.Time().Equal(future) {
			t.Errorf("Time() = %v, want %v", d.Time(), future)
		}
		if d.Time().Location() != time.UTC {
			t.Errorf("Time() location = %v, want UTC", d.Time().Location())
		}
	})

	t.Run("Past", func(t *testing.T) {
		t.Parallel()

		_, err := task.NewDeadline(time.Now().Add(-time.Hour))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		t.Parallel()

		_, err := task.NewDeadline(time.Time{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})
}
