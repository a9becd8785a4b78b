package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/gtm-api/internal/api"
	apiMiddleware "github.com/phrazzld/gtm-api/internal/api/middleware"
	"github.com/phrazzld/gtm-api/internal/config"
	"github.com/phrazzld/gtm-api/internal/generation"
	"github.com/phrazzld/gtm-api/internal/platform/anthropic"
	"github.com/phrazzld/gtm-api/internal/platform/gemini"
	"github.com/phrazzld/gtm-api/internal/platform/openai"
)

// application holds the wired dependencies of the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
}

// newApplication builds the provider registry and the generation pipeline
// from configuration. Fails when no provider credential is configured:
// that is a startup fault, not something to discover on the first request.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	providers, err := generation.BuildRegistry(cfg.LLM)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name)
	}
	logger.Info("provider registry built", "providers", names)

	invokers := []generation.Invoker{
		openai.NewAdapter(logger),
		anthropic.NewAdapter(logger),
		gemini.NewAdapter(logger),
	}

	executor := generation.NewExecutor(
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second, logger)

	service, err := generation.NewService(logger, providers, invokers, executor)
	if err != nil {
		return nil, err
	}

	return &application{
		config:    cfg,
		logger:    logger,
		generator: service,
	}, nil
}

// routes creates and configures the application router with all routes
// and middleware.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	playbookHandler := api.NewPlaybookHandler(app.generator, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/playbooks", playbookHandler.GeneratePlaybook)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// serve runs the HTTP server until ctx is cancelled, then shuts down
// gracefully. The write timeout leaves headroom over the LLM budget so a
// slow generation is ended by the pipeline's own deadline, not the server.
func (app *application) serve(ctx context.Context) error {
	llmBudget := time.Duration(app.config.LLM.TimeoutSeconds) * time.Second
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: llmBudget + 15*time.Second,
		IdleTimeout:  time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		app.logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	app.logger.Info("server stopped")
	return <-errCh
}
