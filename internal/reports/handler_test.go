package reports

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"jirantetangga/internal/platform/logger"
	"jirantetangga/internal/platform/middleware"
)

func newTestHandler(t *testing.T) (*MemoryStore, http.Handler) {
	t.Helper()
	store := NewMemoryStore()
	console := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	obs := middleware.NewInstrumenter(logger.New(console, "", ""), nil, "jiran-tetangga", "reports")
	r := chi.NewRouter()
	NewHandler(store, obs, console).Register(r)
	return store, r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func validCreate() map[string]interface{} {
	return map[string]interface{}{
		"residentId": "64f000000000000000000001",
		"title":      "Broken streetlight",
		"category":   "infrastructure",
		"status":     "open",
		"images":     []string{"lamp.jpg"},
	}
}

func TestCreateReportValidatesResidentID(t *testing.T) {
	_, h := newTestHandler(t)

	input := validCreate()
	input["residentId"] = "not-an-object-id"
	w := doJSON(t, h, http.MethodPost, "/reports", input)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Bad request: residentId must be a valid ObjectId.", decodeBody(t, w)["message"])

	delete(input, "residentId")
	w = doJSON(t, h, http.MethodPost, "/reports", input)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Bad request: residentId is a required parameter.", decodeBody(t, w)["message"])
}

func TestCreateReportSuccess(t *testing.T) {
	store, h := newTestHandler(t)

	w := doJSON(t, h, http.MethodPost, "/reports", validCreate())
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Report created successfully", body["message"])

	report, err := store.FindByID(nil, body["_id"].(string))
	require.NoError(t, err)
	require.Equal(t, "64f000000000000000000001", report.ResidentID)
	require.Equal(t, "open", report.Status)
}

func TestReportLifecycle(t *testing.T) {
	store, h := newTestHandler(t)
	id, err := store.Insert(nil, Report{
		ResidentID: "64f000000000000000000001",
		Title:      "Fallen tree",
		Category:   "environment",
		Status:     "open",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	w := doJSON(t, h, http.MethodPatch, "/reports/"+id, map[string]interface{}{"status": "resolved"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Report updated successfully.", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodGet, "/reports?filters=resolved", nil)
	require.Equal(t, float64(1), decodeBody(t, w)["total"])

	w = doJSON(t, h, http.MethodDelete, "/reports/"+id, nil)
	require.Equal(t, "Report deleted successfully.", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodGet, "/reports/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Report not found", decodeBody(t, w)["message"])
}
