package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"jirantetangga/internal/platform/config"
	"jirantetangga/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the embedded identity.
type TokenValidator interface {
	ValidateToken(tokenString string) (userID, email string, err error)
}

// GateOptions configures the credential gate. Exactly one auth mode is active
// per deployment; the two are never required simultaneously.
type GateOptions struct {
	Mode      string // config.AuthModeAPIKey or config.AuthModeToken
	APIKey    string
	Validator TokenValidator
	// Bypass paths skip the gate entirely regardless of mode (health root,
	// version probe, metrics).
	Bypass []string
	// LoginPath is reachable without a token so clients can obtain one.
	LoginPath string
	// Enabled is false for local/dev runtimes, which bypass the gate for all
	// paths.
	Enabled bool
	Console *slog.Logger
}

// Gate returns the per-request credential check standing in front of every
// business handler.
func Gate(opts GateOptions) func(http.Handler) http.Handler {
	bypass := make(map[string]struct{}, len(opts.Bypass))
	for _, p := range opts.Bypass {
		bypass[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !opts.Enabled {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := bypass[strings.TrimSuffix(r.URL.Path, "/")]; ok || r.URL.Path == "/" {
				next.ServeHTTP(w, r)
				return
			}

			switch opts.Mode {
			case config.AuthModeToken:
				if r.URL.Path == opts.LoginPath {
					next.ServeHTTP(w, r)
					return
				}
				requireToken(opts, next, w, r)
			default:
				requireAPIKey(opts, next, w, r)
			}
		})
	}
}

func requireAPIKey(opts GateOptions, next http.Handler, w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("x-api-key")
	if key == "" {
		opts.Console.Warn("missing API key header",
			"path", r.URL.Path,
			"trace_id", requestcontext.TraceID(r.Context()),
		)
		writeGateError(w, http.StatusUnauthorized, "Missing x-api-key header")
		return
	}
	if key != opts.APIKey {
		opts.Console.Warn("invalid API key",
			"path", r.URL.Path,
			"trace_id", requestcontext.TraceID(r.Context()),
		)
		writeGateError(w, http.StatusForbidden, "Invalid API Key")
		return
	}
	next.ServeHTTP(w, r)
}

func requireToken(opts GateOptions, next http.Handler, w http.ResponseWriter, r *http.Request) {
	const bearerPrefix = "Bearer "
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		opts.Console.Warn("missing bearer token",
			"path", r.URL.Path,
			"trace_id", requestcontext.TraceID(r.Context()),
		)
		writeGateError(w, http.StatusUnauthorized, "Unauthorized: Invalid or missing token")
		return
	}

	userID, email, err := opts.Validator.ValidateToken(token)
	if err != nil {
		opts.Console.Warn("invalid bearer token",
			"path", r.URL.Path,
			"error", err,
			"trace_id", requestcontext.TraceID(r.Context()),
		)
		writeGateError(w, http.StatusUnauthorized, "Unauthorized: Invalid or missing token")
		return
	}

	ctx := requestcontext.WithUserID(r.Context(), userID)
	ctx = requestcontext.WithUserEmail(ctx, email)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func writeGateError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error":%q}`, message)
}
