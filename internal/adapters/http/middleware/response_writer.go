// Package middleware provides the inbound request pipeline. The server
// wires it as Recovery, RequestID, CorrelationID, OpenTelemetry, Logging,
// Timeout, with Auth applied per route group.
//
// Each middleware is a func(http.Handler) http.Handler and can be composed
// with the Chain helper.
package middleware

import "net/http"

// statusWriter wraps http.ResponseWriter so the recovery, otel, and
// logging middleware can observe the status code and the number of body
// bytes after the handler ran.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	bytes       int64
}

func wrapResponseWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code and delegates. Only the first call
// takes effect.
func (sw *statusWriter) WriteHeader(code int) {
	if sw.wroteHeader {
		return
	}
	sw.status = code
	sw.wroteHeader = true
	sw.ResponseWriter.WriteHeader(code)
}

// Write delegates to the wrapped writer. A Write without a prior
// WriteHeader counts as the implicit 200.
func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += int64(n)
	return n, err
}

// Unwrap exposes the wrapped writer so http.ResponseController and
// interface assertions (http.Flusher, http.Hijacker) keep working.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
