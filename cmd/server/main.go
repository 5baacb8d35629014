// Command server runs the neighbourhood community-information backend.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jirantetangga/internal/adminusers"
	"jirantetangga/internal/auth"
	"jirantetangga/internal/disruptions"
	"jirantetangga/internal/events"
	"jirantetangga/internal/jwttoken"
	"jirantetangga/internal/parks"
	"jirantetangga/internal/platform/config"
	"jirantetangga/internal/platform/httpserver"
	"jirantetangga/internal/platform/logger"
	"jirantetangga/internal/platform/metrics"
	"jirantetangga/internal/platform/middleware"
	"jirantetangga/internal/platform/mongodb"
	"jirantetangga/internal/platform/secrets"
	"jirantetangga/internal/reports"
	"jirantetangga/internal/server"
	"jirantetangga/internal/shops"
)

const shutdownTimeout = 10 * time.Second

func main() {
	console := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(console); err != nil {
		console.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(console *slog.Logger) error {
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bundle, err := loadSecrets(ctx, cfg, console)
	if err != nil {
		return err
	}

	log := logger.New(console, bundle.LokiHost, bundle.LokiToken)
	defer log.Flush()

	db, err := mongodb.Connect(ctx, bundle.MongoURI, cfg.MongoDBName)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Close(shutdownCtx); err != nil {
			console.Error("mongo disconnect", "error", err)
		}
	}()

	m := metrics.New(prometheus.DefaultRegisterer)
	tokens := jwttoken.New(bundle.JWTKey)

	obs := func(module string) *middleware.Instrumenter {
		return middleware.NewInstrumenter(log, m, cfg.ServiceName, module)
	}
	adminStore := adminusers.NewMongoStore(db.Collection("admin_user"))

	handler := server.New(server.Options{
		Config:         cfg,
		Secrets:        bundle,
		TokenValidator: tokens,
		MetricsHandler: promhttp.Handler(),
		Console:        console,
		Modules: []server.Registrar{
			shops.NewHandler(shops.NewMongoStore(db.Collection("shops")), obs("shops"), console),
			parks.NewHandler(parks.NewMongoStore(db.Collection("parks")), obs("parks"), console),
			events.NewHandler(events.NewMongoStore(db.Collection("events")), obs("events"), console),
			disruptions.NewHandler(disruptions.NewMongoStore(db.Collection("disruptions")), obs("disruptions"), console),
			reports.NewHandler(reports.NewMongoStore(db.Collection("reports")), obs("reports"), console),
			adminusers.NewHandler(adminStore, bundle.EncryptionKey, obs("adminUsers"), console),
			auth.NewHandler(adminStore, tokens, bundle.EncryptionKey, obs("auth"), console),
		},
	})

	srv := httpserver.New(cfg.Addr, handler)

	errCh := make(chan error, 1)
	go func() {
		console.Info("server listening", "addr", cfg.Addr, "env", cfg.Env, "basePath", cfg.BasePath())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		console.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// loadSecrets prefers the vault; local runs without a vault identity fall back
// to plain environment variables. Missing critical secrets stop the boot.
func loadSecrets(ctx context.Context, cfg config.Config, console *slog.Logger) (secrets.Bundle, error) {
	if cfg.VaultConfigured() {
		bundle, ok := secrets.NewClient(cfg.Vault, console).Load(ctx)
		if !ok {
			return secrets.Bundle{}, errors.New("critical secrets missing from vault")
		}
		return bundle, nil
	}

	console.Warn("vault identity not configured, reading secrets from environment")
	bundle := secrets.FromEnv()
	if !bundle.Complete() {
		return secrets.Bundle{}, errors.New("critical secrets missing from environment")
	}
	return bundle, nil
}
