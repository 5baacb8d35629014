package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"jirantetangga/pkg/requestcontext"
)

// TraceHeader carries the per-request correlation token back to the caller.
const TraceHeader = "X-Trace-Id"

// Trace mints one trace id per inbound request and threads it through the
// context so every log line for the request's lifecycle can be correlated.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		ctx := requestcontext.WithTraceID(r.Context(), traceID)
		w.Header().Set(TraceHeader, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
