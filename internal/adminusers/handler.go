// Package adminusers manages the council administrator accounts.
package adminusers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jirantetangga/internal/passcrypt"
	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/query"
	"jirantetangga/internal/validation"
	"jirantetangga/pkg/httputil"
	"jirantetangga/pkg/requestcontext"
)

// Immutable-field messages of the PATCH endpoint.
var updateRejections = map[string]string{
	"email": "Email of the administrator user cannot be updated.",
	"phone": "Phone number of the administrator user cannot be updated.",
}

type Handler struct {
	store         Store
	encryptionKey string
	obs           *middleware.Instrumenter
	console       *slog.Logger
}

func NewHandler(store Store, encryptionKey string, obs *middleware.Instrumenter, console *slog.Logger) *Handler {
	return &Handler{store: store, encryptionKey: encryptionKey, obs: obs, console: console}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/adminUsers", h.obs.Wrap("Get All Admin Users API", h.handleList))
	r.Get("/adminUsers/{adminUserId}", h.obs.Wrap("Get Admin User API", h.handleGet))
	r.Post("/adminUsers", h.obs.Wrap("Create Admin User API", h.handleCreate))
	r.Patch("/adminUsers/{adminUserId}", h.obs.Wrap("Update Admin User API", h.handleUpdate))
	r.Delete("/adminUsers/{adminUserId}", h.obs.Wrap("Delete Admin User API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	users, total, err := h.store.List(r.Context(), page, r.URL.Query().Get("email"))
	if err != nil {
		h.console.Error("list admin users", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Admin Users API", err)
		return
	}
	httputil.List(w, users, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "adminUserId")
	if !validation.Check(w, map[string]interface{}{"adminUserId": id}, []string{"adminUserId"}) {
		return
	}
	user, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Admin user not found")
		return
	}
	if err != nil {
		h.console.Error("find admin user", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Admin User API", err)
		return
	}
	httputil.Data(w, user)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	// Fields fail in declaration order: the password policy sits between
	// email and phone.
	if !validation.Check(w, in.fields(), []string{"firstName", "lastName", "email"}) {
		return
	}
	if len(in.Password) < 8 {
		httputil.Message(w, http.StatusBadRequest,
			"Bad request: Password is required and must be at least 8 characters.")
		return
	}
	if !validation.Check(w, in.fields(), []string{"phone"}) {
		return
	}

	_, err := h.store.FindByEmail(r.Context(), in.Email)
	if err == nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: duplicate admin email exists.")
		return
	}
	if !errors.Is(err, ErrNotFound) {
		h.console.Error("lookup admin email", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Admin User API", err)
		return
	}

	encrypted, err := passcrypt.Encrypt(in.Password, h.encryptionKey)
	if err != nil {
		h.console.Error("encrypt admin password", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Admin User API", err)
		return
	}

	id, err := h.store.Insert(r.Context(), AdminUser{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  encrypted,
		Phone:     in.Phone,
		CreatedAt: requestcontext.Now(r.Context()),
	})
	if err != nil {
		h.console.Error("insert admin user", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Admin User API", err)
		return
	}
	httputil.Created(w, "Administrator created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "adminUserId")
	if !validation.Check(w, map[string]interface{}{"adminUserId": id}, []string{"adminUserId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	if !validation.RejectIfPresent(w, in.fields(), []string{"email", "phone"}, updateRejections) {
		return
	}
	user, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Admin user not updated")
		return
	}
	if err != nil {
		h.console.Error("update admin user", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Admin User API", err)
		return
	}
	httputil.Updated(w, "Admin user updated successfully.", user)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "adminUserId")
	if !validation.Check(w, map[string]interface{}{"adminUserId": id}, []string{"adminUserId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Admin user not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete admin user", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Admin User API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Admin user deleted successfully.")
}
