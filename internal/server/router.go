// Package server composes the middleware chain and route tree. The router is
// built once from immutable options; nothing mutates it after startup.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jirantetangga/internal/platform/config"
	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/platform/secrets"
	"jirantetangga/pkg/httputil"
)

// Registrar is one resource module hooking its routes under the base path.
type Registrar interface {
	Register(r chi.Router)
}

// Options carries everything the route tree needs. Modules register in the
// order given.
type Options struct {
	Config         config.Config
	Secrets        secrets.Bundle
	TokenValidator middleware.TokenValidator
	MetricsHandler http.Handler
	Console        *slog.Logger
	Modules        []Registrar
}

// New builds the full handler chain: recovery, CORS, trace minting, the
// credential gate, then the probes and resource routes.
func New(opts Options) http.Handler {
	base := opts.Config.BasePath()

	r := chi.NewRouter()
	r.Use(middleware.Recovery(opts.Console))
	r.Use(middleware.CORS)
	r.Use(middleware.Trace)
	r.Use(middleware.Gate(middleware.GateOptions{
		Mode:      opts.Config.AuthMode,
		APIKey:    opts.Secrets.APIKey,
		Validator: opts.TokenValidator,
		Bypass:    []string{"/", base, "/metrics"},
		LoginPath: base + "/auth/login",
		Enabled:   opts.Config.Production(),
		Console:   opts.Console,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Neighbourhood Info Backend Running"))
	})

	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler)
	}

	r.Route(base, func(r chi.Router) {
		r.Get("/", probe(opts.Config))
		for _, m := range opts.Modules {
			m.Register(r)
		}
	})

	return r
}

// probe is the version endpoint deploy pipelines poll after a rollout.
func probe(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, httputil.Envelope{
			Status:  http.StatusOK,
			Message: "Route is working",
			Data: map[string]string{
				"apiVersion": cfg.APIVersion,
				"appVersion": cfg.AppVersion,
			},
		})
	}
}
