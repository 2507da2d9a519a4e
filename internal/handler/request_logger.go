package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nadifa/guestbook/pkg/visitor"
)

// responseRecorder captures what a handler wrote for the access log.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (rr *responseRecorder) Unwrap() http.ResponseWriter { return rr.ResponseWriter }

// logLevel maps a response status to the level its access line is logged at.
func logLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// RequestLogger writes one access line per request with the matched route
// and the visitor. It must sit inside visitor.Middleware and outside the mux,
// which records the route on the request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rr, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		visitorID, _ := visitor.FromContext(r.Context())
		slog.Log(r.Context(), logLevel(rr.status), "request",
			"route", route,
			"path", r.URL.Path,
			"status", rr.status,
			"bytes", rr.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"visitor", visitorID,
		)
	})
}
