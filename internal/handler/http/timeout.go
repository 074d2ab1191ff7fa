package http

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"content-service/internal/handler/http/respond"
)

// Timeout returns middleware that answers 504 when the handler exceeds d.
// The handler keeps running with a cancelled context; its later header changes
// and writes are discarded.
// A non-positive d disables the timeout.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutResponseWriter{w: w, h: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
				tw.mu.Lock()
				if !tw.written {
					// handler returned without writing; net/http sends 200 with its headers
					tw.copyHeaderLocked()
				}
				tw.mu.Unlock()
			case p := <-panicked:
				// surface on the serving goroutine so Recover sees it
				panic(p)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					respond.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "request timeout"})
				}
			}
		})
	}
}

// timeoutResponseWriter serializes writes between the handler goroutine and the timeout path.
// The handler sees its own header map, copied onto the real writer when the
// header is sent, so a handler still running after a timeout never touches
// the headers of the 504 response.
type timeoutResponseWriter struct {
	w        http.ResponseWriter
	h        http.Header
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func (tw *timeoutResponseWriter) Header() http.Header { return tw.h }

func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if !tw.timedOut && !tw.written {
		tw.writeHeaderLocked(statusCode)
	}
}

func (tw *timeoutResponseWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.written {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(data)
}

// writeHeaderLocked and copyHeaderLocked require tw.mu.
func (tw *timeoutResponseWriter) writeHeaderLocked(statusCode int) {
	tw.written = true
	tw.copyHeaderLocked()
	tw.w.WriteHeader(statusCode)
}

func (tw *timeoutResponseWriter) copyHeaderLocked() {
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = slices.Clone(vv)
	}
}
