package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"jirantetangga/internal/platform/config"
	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/platform/secrets"
)

type pingModule struct{}

func (pingModule) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func testConfig(env string) config.Config {
	return config.Config{
		RoutePrepend: "jiran-tetangga",
		Version:      "v1",
		APIVersion:   "1.2.0",
		AppVersion:   "3.4.0",
		Env:          env,
		AuthMode:     config.AuthModeAPIKey,
	}
}

func newRouter(env string) http.Handler {
	return New(Options{
		Config:  testConfig(env),
		Secrets: secrets.Bundle{APIKey: "expected-key"},
		Console: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
		Modules: []Registrar{pingModule{}},
	})
}

func get(h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthRoot(t *testing.T) {
	w := get(newRouter(config.EnvProduction), "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Neighbourhood Info Backend Running", w.Body.String())
}

func TestVersionProbeBypassesGate(t *testing.T) {
	w := get(newRouter(config.EnvProduction), "/jiran-tetangga/v1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  int               `json:"status"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "Route is working", body.Message)
	require.Equal(t, "1.2.0", body.Data["apiVersion"])
	require.Equal(t, "3.4.0", body.Data["appVersion"])
}

func TestGateGuardsResourceRoutes(t *testing.T) {
	h := newRouter(config.EnvProduction)

	w := get(h, "/jiran-tetangga/v1/ping", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(h, "/jiran-tetangga/v1/ping", map[string]string{"x-api-key": "expected-key"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGateDisabledOutsideProduction(t *testing.T) {
	w := get(newRouter(config.EnvLocal), "/jiran-tetangga/v1/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestEveryResponseCarriesTraceHeader(t *testing.T) {
	w := get(newRouter(config.EnvLocal), "/jiran-tetangga/v1/ping", nil)
	require.NotEmpty(t, w.Header().Get(middleware.TraceHeader))
}

func TestCORSPreflight(t *testing.T) {
	h := newRouter(config.EnvProduction)
	req := httptest.NewRequest(http.MethodOptions, "/jiran-tetangga/v1/ping", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
