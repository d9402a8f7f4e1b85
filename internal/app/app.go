package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/config"
	"github.com/utafrali/BlogGo/internal/discover"
	"github.com/utafrali/BlogGo/internal/session"
	"github.com/utafrali/BlogGo/internal/web"
	"github.com/utafrali/BlogGo/pkg/health"
	"github.com/utafrali/BlogGo/pkg/httpclient"
)

const restoreTimeout = 10 * time.Second

// App wires together all dependencies and runs the blog client.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      *session.Store
	httpServer *http.Server
}

// NewApp creates the application with all dependencies wired: the
// retrying HTTP client behind a circuit breaker, the remote API client,
// the session store over the credential file, the discovery fetcher, and
// the HTML view layer.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	hc := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("blog-api"), logger)

	apiClient := api.New(cfg.APIBaseURL, cb, logger)

	creds := session.NewFileStore(cfg.CredentialsFile)
	store := session.NewStore(apiClient, creds, logger)

	// The store supplies credentials for every authenticated call and is
	// torn down when the API rejects them.
	apiClient.SetTokenSource(store)
	apiClient.OnUnauthorized(store.Invalidate)

	fetcher := discover.NewFetcher(apiClient, logger)

	renderer, err := web.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	handler := web.NewHandler(cfg, store, fetcher, apiClient, renderer, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterNonCritical("blog_api", apiClient.Ping)

	router := web.NewRouter(handler, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and the session restore, then blocks until
// the context is canceled. The restore runs concurrently with serving;
// guarded routes hold their navigations until it resolves.
func (a *App) Run(ctx context.Context) error {
	go func() {
		restoreCtx, cancel := context.WithTimeout(ctx, restoreTimeout)
		defer cancel()
		snap := a.store.Restore(restoreCtx)
		a.logger.Info("session resolved", slog.String("state", snap.State.String()))
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully drains in-flight HTTP requests.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
