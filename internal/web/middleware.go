package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"playbud-discovery/internal/logging"
)

const headerRequestID = "X-Request-ID"

// requestID assigns each request an id, echoes it on the response and
// carries a logger annotated with it in the request context.
func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		if h.logger != nil {
			reqLogger := h.logger.With(
				logging.FieldRequestID, id,
				logging.FieldMethod, r.Method,
				logging.FieldPath, r.URL.Path,
			)
			r = r.WithContext(logging.WithLogger(r.Context(), reqLogger))
		}
		next.ServeHTTP(w, r)
	})
}

// observe records request logs and metrics keyed by the matched route
// pattern rather than the raw path, so ids don't explode cardinality.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		duration := time.Since(start)

		if h.metrics != nil {
			h.metrics.RecordHTTPRequest(r.Method, route, sw.status, duration)
		}
		logging.Info(logging.FromContext(r.Context(), h.logger), "request handled",
			logging.FieldStatusCode, sw.status,
			logging.FieldDurationMS, duration.Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
