// Package events serves the community event calendar.
package events

import (
	"encoding/json"
	"errors"
	"io"
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
	r.Get("/events", h.obs.Wrap("Get All Events API", h.handleList))
	r.Get("/events/{eventId}", h.obs.Wrap("Get Event API", h.handleGet))
	r.Post("/events", h.obs.Wrap("Create Event API", h.handleCreate))
	r.Patch("/events/{eventId}", h.obs.Wrap("Update Event API", h.handleUpdate))
	r.Delete("/events/{eventId}", h.obs.Wrap("Delete Event API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	events, total, err := h.store.List(r.Context(), page)
	if err != nil {
		h.console.Error("list events", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Events API", err)
		return
	}
	httputil.List(w, events, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")
	if !validation.Check(w, map[string]interface{}{"eventId": id}, []string{"eventId"}) {
		return
	}
	event, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		h.console.Error("find event", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Event API", err)
		return
	}
	httputil.Data(w, event)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	in, err := decodeCreate(raw)
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	required := []string{"title", "description", "organizerName", "organizerEmail", "eventDate", "location"}
	if !validation.Check(w, in.fields(), required) {
		return
	}
	id, err := h.store.Insert(r.Context(), in.toEvent(requestcontext.Now(r.Context())))
	if err != nil {
		h.console.Error("insert event", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Event API", err)
		return
	}
	httputil.Created(w, "Event created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")
	if !validation.Check(w, map[string]interface{}{"eventId": id}, []string{"eventId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	event, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Event not updated")
		return
	}
	if err != nil {
		h.console.Error("update event", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Event API", err)
		return
	}
	httputil.Updated(w, "Event updated successfully.", event)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "eventId")
	if !validation.Check(w, map[string]interface{}{"eventId": id}, []string{"eventId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Event not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete event", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Event API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Event deleted successfully.")
}
