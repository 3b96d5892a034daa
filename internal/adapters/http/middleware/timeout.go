package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Timeout enforces a per-request deadline. When the handler overruns it,
// the client gets a 504 and whatever the handler writes afterwards is
// discarded. The deadline rides on the request context, so repository and
// broker calls under the handler observe it too.
//
// The handler runs in its own goroutine; the buffered writer below makes
// sure exactly one side produces the response.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			bw := &bufferedWriter{dst: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(bw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
				bw.mu.Lock()
				defer bw.mu.Unlock()
				bw.flush()
			case <-ctx.Done():
				bw.mu.Lock()
				defer bw.mu.Unlock()
				if !bw.wroteHeader {
					w.WriteHeader(http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// bufferedWriter holds the handler's output until the race against the
// deadline is decided. The mutex is shared between the handler goroutine
// and the select above.
type bufferedWriter struct {
	dst         http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	body        []byte
	status      int
	wroteHeader bool
}

func (bw *bufferedWriter) Header() http.Header {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.header == nil {
		bw.header = make(http.Header)
	}
	return bw.header
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if !bw.wroteHeader {
		bw.status = http.StatusOK
		bw.wroteHeader = true
	}
	bw.body = append(bw.body, b...)
	return len(b), nil
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.wroteHeader {
		return
	}
	bw.status = code
	bw.wroteHeader = true
}

// flush replays the buffered response onto the real writer. Callers hold
// bw.mu.
func (bw *bufferedWriter) flush() {
	if bw.header != nil {
		maps.Copy(bw.dst.Header(), bw.header)
	}
	if bw.wroteHeader {
		bw.dst.WriteHeader(bw.status)
	}
	if len(bw.body) > 0 {
		_, _ = bw.dst.Write(bw.body)
	}
}
