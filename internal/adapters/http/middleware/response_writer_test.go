package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	t.Parallel()

	sw := wrapResponseWriter(httptest.NewRecorder())

	if sw.status != http.StatusOK {
		t.Errorf("status = %d, want %d", sw.status, http.StatusOK)
	}
	if sw.wroteHeader {
		t.Error("wroteHeader = true before any write")
	}
}

func TestStatusWriter_RecordsFirstHeaderOnly(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapResponseWriter(rec)

	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusConflict)

	if sw.status != http.StatusCreated {
		t.Errorf("status = %d, want %d (first call wins)", sw.status, http.StatusCreated)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("recorder Code = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestStatusWriter_CountsBodyBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapResponseWriter(rec)

	if _, err := sw.Write([]byte(`{"oid":`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := sw.Write([]byte(`"t-1"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if sw.bytes != 13 {
		t.Errorf("bytes = %d, want 13", sw.bytes)
	}
	if !sw.wroteHeader {
		t.Error("Write did not mark the implicit 200")
	}
	if rec.Body.String() != `{"oid":"t-1"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestStatusWriter_Unwrap(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sw := wrapResponseWriter(rec)

	if sw.Unwrap() != rec {
		t.Error("Unwrap did not return the wrapped writer")
	}
}
