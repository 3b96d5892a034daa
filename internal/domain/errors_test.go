package domain_test

import (
	"errors"
	"testing"

	"tasklane/internal/domain"
)

func TestNewValidationError_WrapsSentinel(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationError("title", domain.MsgRequired)

	if !errors.Is(err, domain.ErrValidation) {
		t.Error("expected errors.Is(err, ErrValidation) to hold")
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatal("expected errors.As to extract *ValidationError")
	}
	if verr.Fields["title"] != domain.MsgRequired {
		t.Errorf("Fields[title] = %q, want %q", verr.Fields["title"], domain.MsgRequired)
	}
}

func TestValidationError_MessageSortsFields(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{
		"title": "too long",
		"body":  "must not be empty",
	}}

	want := "validation error: body: must not be empty; title: too long"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrConflict,
		domain.ErrForbidden,
		domain.ErrUnauthorized,
		domain.ErrUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
