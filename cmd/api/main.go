// Package main is the entry point for the Tribute Wall API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tribute-wall/internal/app"
	"github.com/pkordes/tribute-wall/internal/config"
	"github.com/pkordes/tribute-wall/internal/handler"
	"github.com/pkordes/tribute-wall/internal/metrics"
	"github.com/pkordes/tribute-wall/internal/middleware"
	"github.com/pkordes/tribute-wall/internal/repo"
	"github.com/pkordes/tribute-wall/internal/service"
	"github.com/pkordes/tribute-wall/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := app.NewLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	m := metrics.New()

	// --- Storage ----------------------------------------------------------
	storage, err := app.OpenStorage(context.Background(), cfg, logger)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	subject, err := app.LoadProfile(cfg)
	if err != nil {
		slog.Error("failed to load subject profile", "path", cfg.ProfilePath, "error", err)
		os.Exit(1)
	}

	// --- Services ---------------------------------------------------------
	store := repo.NewTributeStore(storage.Facility, logger, m)
	wall := service.NewTributeWall(store, subject.FullName, subject.Seeds, service.WallOptions{
		Rules:       app.ValidationRules(cfg),
		SubmitDelay: cfg.SubmitDelay,
		Recorder:    m,
	})
	initial := wall.Initialize(context.Background())
	slog.Info("tribute wall ready",
		"subject", subject.FullName,
		"storage_key", repo.DeriveKey(subject.FullName),
		"tributes", len(initial),
	)

	sessions := service.NewSessionService(repo.NewVisitorRepo(storage.Facility), service.SessionOptions{
		Delay:    cfg.SignInDelay,
		Recorder: m,
		Logger:   logger,
	})
	export := service.NewExportService(wall)

	srv := handler.NewServer(wall, sessions, export, subject, handler.Options{
		RequireSignIn: cfg.RequireSignIn,
		AdminEnabled:  cfg.AdminEnabled,
		OpenAPI:       spec.OpenAPI,
		Logger:        logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// Recoverer → CORS → MaxBodySize.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.NewMetrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", m.Handler())
	r.Mount("/", srv.Handler())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for the configured submit pause.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.SubmitDelay + cfg.SignInDelay,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "storage", cfg.StorageDriver)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
