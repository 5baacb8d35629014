// Package shops serves the neighbourhood shop directory.
package shops

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
	r.Get("/shops", h.obs.Wrap("Get All Shops API", h.handleList))
	r.Get("/shops/{shopId}", h.obs.Wrap("Get Shop API", h.handleGet))
	r.Post("/shops", h.obs.Wrap("Create Shop API", h.handleCreate))
	r.Patch("/shops/{shopId}", h.obs.Wrap("Update Shop API", h.handleUpdate))
	r.Delete("/shops/{shopId}", h.obs.Wrap("Delete Shop API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	shops, total, err := h.store.List(r.Context(), page)
	if err != nil {
		h.console.Error("list shops", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Shops API", err)
		return
	}
	httputil.List(w, shops, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shopId")
	if !validation.Check(w, map[string]interface{}{"shopId": id}, []string{"shopId"}) {
		return
	}
	shop, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Shop not found")
		return
	}
	if err != nil {
		h.console.Error("find shop", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Shop API", err)
		return
	}
	httputil.Data(w, shop)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	if !validation.Check(w, in.fields(), []string{"name", "description"}) {
		return
	}
	id, err := h.store.Insert(r.Context(), in.toShop(requestcontext.Now(r.Context())))
	if err != nil {
		h.console.Error("insert shop", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Shop API", err)
		return
	}
	httputil.Created(w, "Shop created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shopId")
	if !validation.Check(w, map[string]interface{}{"shopId": id}, []string{"shopId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	shop, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Shop not updated")
		return
	}
	if err != nil {
		h.console.Error("update shop", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Shop API", err)
		return
	}
	httputil.Updated(w, "Shop updated successfully.", shop)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "shopId")
	if !validation.Check(w, map[string]interface{}{"shopId": id}, []string{"shopId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Shop not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete shop", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Shop API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Shop deleted successfully.")
}
