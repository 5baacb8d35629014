// Package reports serves resident-submitted issue reports.
package reports

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
	r.Get("/reports", h.obs.Wrap("Get All Reports API", h.handleList))
	r.Get("/reports/{reportId}", h.obs.Wrap("Get Report API", h.handleGet))
	r.Post("/reports", h.obs.Wrap("Create Report API", h.handleCreate))
	r.Patch("/reports/{reportId}", h.obs.Wrap("Update Report API", h.handleUpdate))
	r.Delete("/reports/{reportId}", h.obs.Wrap("Delete Report API", h.handleDelete))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := query.ParsePage(r.URL.Query())
	if err != nil {
		httputil.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	reports, total, err := h.store.List(r.Context(), page)
	if err != nil {
		h.console.Error("list reports", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get All Reports API", err)
		return
	}
	httputil.List(w, reports, total)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")
	if !validation.Check(w, map[string]interface{}{"reportId": id}, []string{"reportId"}) {
		return
	}
	report, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		h.console.Error("find report", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Get Report API", err)
		return
	}
	httputil.Data(w, report)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	// residentId leads so its ObjectId check fires before the plain fields.
	required := []string{"residentId", "title", "category", "status", "images"}
	if !validation.Check(w, in.fields(), required) {
		return
	}
	id, err := h.store.Insert(r.Context(), in.toReport(requestcontext.Now(r.Context())))
	if err != nil {
		h.console.Error("insert report", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Create Report API", err)
		return
	}
	httputil.Created(w, "Report created successfully", id)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")
	if !validation.Check(w, map[string]interface{}{"reportId": id}, []string{"reportId"}) {
		return
	}
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.Message(w, http.StatusBadRequest, "Bad request: invalid JSON body.")
		return
	}
	report, err := h.store.Update(r.Context(), id, in, requestcontext.Now(r.Context()))
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Report not updated")
		return
	}
	if err != nil {
		h.console.Error("update report", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Update Report API", err)
		return
	}
	httputil.Updated(w, "Report updated successfully.", report)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")
	if !validation.Check(w, map[string]interface{}{"reportId": id}, []string{"reportId"}) {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.Message(w, http.StatusNotFound, "Report not deleted")
		return
	}
	if err != nil {
		h.console.Error("delete report", "error", err, "traceId", requestcontext.TraceID(r.Context()))
		httputil.ServerError(w, "Delete Report API", err)
		return
	}
	httputil.Message(w, http.StatusOK, "Report deleted successfully.")
}
