// Package parks serves the public-park condition registry.
package parks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/query"
	"jirantetangga/internal/validation"
	"jirantetangga/pkg/httputil"
	"jirantetangga/pkg/requestcontext"
)

type Handler struct {
	store   Store
	obs     *middleware.Instrumenter
	console *slog.Logger
}

func NewHandler(store Store, obs *middleware.Instrumenter, console *slog.Logger) *Handler {
	return &Handler{store: store, obs: obs, console: console}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/parks", h.obs.Wrap("Get All Parks API", h.handleList))
	r.Get("/parks/{parkId}", h.obs.Wrap("Get Park API", h.handleGet))
	r.Post("/parks", h.obs.Wrap("Create Park API", h.handleCreate))
	r.Patch("/parks/{parkId}", h.obs.Wrap("Update Park API", h.handleUpdate))
	r.Delete("/parks/{parkId}", h.obs.Wrap("Delete Park API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	parks, total, err := h.store.List(r.Context(), page)
	if err != nil {
		h.console.Error("list parks", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Parks API", err)
		return
	}
	httputil.List(w, parks, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "parkId")
	if !validation.Check(w, map[string]interface{}{"parkId": id}, []string{"parkId"}) {
		return
	}
	park, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Park not found")
		return
	}
	if err != nil {
		h.console.Error("find park", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Park API", err)
		return
	}
	httputil.Data(w, park)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	required := []string{"name", "condition", "lastInspected", "images", "notes", "location"}
	if !validation.Check(w, in.fields(), required) {
		return
	}
	id, err := h.store.Insert(r.Context(), in.toPark(requestcontext.Now(r.Context())))
	if err != nil {
		h.console.Error("insert park", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Park API", err)
		return
	}
	httputil.Created(w, "Park created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "parkId")
	if !validation.Check(w, map[string]interface{}{"parkId": id}, []string{"parkId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	park, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Park not updated")
		return
	}
	if err != nil {
		h.console.Error("update park", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Park API", err)
		return
	}
	httputil.Updated(w, "Park updated successfully.", park)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "parkId")
	if !validation.Check(w, map[string]interface{}{"parkId": id}, []string{"parkId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Park not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete park", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Park API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Park deleted successfully.")
}
