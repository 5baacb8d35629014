// Package auth serves administrator login and token issuance.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jirantetangga/internal/adminusers"
	"jirantetangga/internal/jwttoken"
	"jirantetangga/internal/passcrypt"
	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/validation"
	"jirantetangga/pkg/httputil"
	"jirantetangga/pkg/requestcontext"
)

// Credential failures share one message so the response never reveals whether
// the email exists.
const invalidCredentials = "Invalid email or password!"

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type Handler struct {
	users         adminusers.Store
	tokens        *jwttoken.Service
	encryptionKey string
	obs           *middleware.Instrumenter
	console       *slog.Logger
}

func NewHandler(users adminusers.Store, tokens *jwttoken.Service, encryptionKey string, obs *middleware.Instrumenter, console *slog.Logger) *Handler {
	return &Handler{users: users, tokens: tokens, encryptionKey: encryptionKey, obs: obs, console: console}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.obs.Wrap("Admin Login API", h.handleLogin))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	fields := map[string]interface{}{"email": in.Email, "password": in.Password}
	if !validation.Check(w, fields, []string{"email", "password"}) {
		return
	}

	user, err := h.users.FindByEmail(r.Context(), in.Email)
	if errors.Is(err, adminusers.ErrNotFound) {
		httputil.Message(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		h.console.Error("login lookup", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Admin Login API", err)
		return
	}

	stored, err := passcrypt.Decrypt(user.Password, h.encryptionKey)
	if err != nil || stored != in.Password {
		httputil.Message(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := h.tokens.Sign(user.ID.Hex(), user.Email)
	if err != nil {
		h.console.Error("sign token", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Admin Login API", err)
		return
	}
	httputil.Data(w, loginResult{Email: user.Email, Token: token})
}
