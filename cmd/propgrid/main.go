package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/api/admin"
	"github.com/johnwards/propgrid/internal/api/grid"
	"github.com/johnwards/propgrid/internal/api/nodes"
	"github.com/johnwards/propgrid/internal/api/specs"
	"github.com/johnwards/propgrid/internal/binding"
	"github.com/johnwards/propgrid/internal/config"
	"github.com/johnwards/propgrid/internal/database"
	"github.com/johnwards/propgrid/internal/seed"
	"github.com/johnwards/propgrid/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if cfg.Seed {
		if err := seed.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}

	s := store.New(db)
	binder := binding.NewBinder(s, binding.NewTypeRegistry(), logger)

	mux := http.NewServeMux()
	nodes.RegisterRoutes(mux, s)
	grid.RegisterRoutes(mux, binder)
	specs.RegisterRoutes(mux, s)
	admin.RegisterRoutes(mux, s.DB)

	// Catch-all: unknown routes get the standard error envelope.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("No route found for %s %s", r.Method, r.URL.Path),
			api.CorrelationID(r.Context()),
		))
	})

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: api.Chain(mux,
			api.Recovery(),
			api.RequestID(),
			api.Auth(cfg.AuthToken),
			api.JSONContentType(),
			api.Logging(),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting propgrid server", "addr", cfg.Addr, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
