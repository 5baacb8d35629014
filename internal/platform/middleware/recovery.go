package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"jirantetangga/pkg/httputil"
	"jirantetangga/pkg/requestcontext"
)

// Recovery is the outermost safety net: panics escaping any handler (including
// routes outside the per-module instrumenter) become the 500 envelope instead
// of reaching the transport layer unhandled.
func Recovery(console *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if !ok {
						err = fmt.Errorf("%v", v)
					}
					console.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"trace_id", requestcontext.TraceID(r.Context()),
					)
					httputil.ServerError(w, "Request", err)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
