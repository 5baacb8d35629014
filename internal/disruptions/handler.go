// Package disruptions serves the service-disruption notice board.
package disruptions

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
	r.Get("/disruptions", h.obs.Wrap("Get All Disruptions API", h.handleList))
	r.Get("/disruptions/{disruptionId}", h.obs.Wrap("Get Disruption API", h.handleGet))
	r.Post("/disruptions", h.obs.Wrap("Create Disruption API", h.handleCreate))
	r.Patch("/disruptions/{disruptionId}", h.obs.Wrap("Update Disruption API", h.handleUpdate))
	r.Delete("/disruptions/{disruptionId}", h.obs.Wrap("Delete Disruption API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	disruptions, total, err := h.store.List(r.Context(), page)
	if err != nil {
		h.console.Error("list disruptions", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Disruptions API", err)
		return
	}
	httputil.List(w, disruptions, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "disruptionId")
	if !validation.Check(w, map[string]interface{}{"disruptionId": id}, []string{"disruptionId"}) {
		return
	}
	d, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Disruption not found")
		return
	}
	if err != nil {
		h.console.Error("find disruption", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Disruption API", err)
		return
	}
	httputil.Data(w, d)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	if !validation.Check(w, in.fields(), []string{"title", "description"}) {
		return
	}
	id, err := h.store.Insert(r.Context(), in.toDisruption(requestcontext.Now(r.Context())))
	if err != nil {
		h.console.Error("insert disruption", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Disruption API", err)
		return
	}
	httputil.Created(w, "Disruption created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "disruptionId")
	if !validation.Check(w, map[string]interface{}{"disruptionId": id}, []string{"disruptionId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	d, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Disruption not updated")
		return
	}
	if err != nil {
		h.console.Error("update disruption", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Disruption API", err)
		return
	}
	httputil.Updated(w, "Disruption updated successfully.", d)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "disruptionId")
	if !validation.Check(w, map[string]interface{}{"disruptionId": id}, []string{"disruptionId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Disruption not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete disruption", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Disruption API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Disruption deleted successfully.")
}
