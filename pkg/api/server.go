package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tagforge-hq/tagforge/pkg/config"
	"tagforge-hq/tagforge/pkg/render"
	"tagforge-hq/tagforge/pkg/sanitize"
	"tagforge-hq/tagforge/pkg/snippet"
	"tagforge-hq/tagforge/pkg/telemetry/metrics"
)

// Options wires a Server to its collaborators. Writer may be nil when the
// configured store backend is read-only; write endpoints then answer 501.
type Options struct {
	Config    config.Config
	Pipeline  *render.Pipeline
	Validator *sanitize.Validator
	Store     snippet.Store
	Writer    snippet.Writer
	Metrics   *metrics.Collector
	Logger    *slog.Logger
}

// Server is the HTTP surface of the engine.
type Server struct {
	cfg       config.Config
	pipeline  *render.Pipeline
	validator *sanitize.Validator
	store     snippet.Store
	writer    snippet.Writer
	metrics   *metrics.Collector
	logger    *slog.Logger

	httpServer *http.Server
	mu         sync.Mutex
	running    bool
}

// NewServer creates the HTTP server. A nil validator gets default bounds;
// a nil logger gets slog.Default().
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	validator := opts.Validator
	if validator == nil {
		validator = sanitize.NewValidator(sanitize.DefaultConfig())
	}
	return &Server{
		cfg:       opts.Config,
		pipeline:  opts.Pipeline,
		validator: validator,
		store:     opts.Store,
		writer:    opts.Writer,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "api"),
	}
}

// Handler builds the router. Exposed separately so tests can drive the
// routes without binding a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/render/{position}", s.handleRender)

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Get("/preview", s.handlePreview)
		r.Post("/cache/invalidate", s.handleInvalidate)
		r.Get("/stats", s.handleStats)

		r.Route("/snippets", func(r chi.Router) {
			r.Get("/", s.handleListSnippets)
			r.Post("/", s.handleCreateSnippet)
			r.Get("/{id}", s.handleGetSnippet)
			r.Put("/{id}", s.handleUpdateSnippet)
			r.Delete("/{id}", s.handleDeleteSnippet)
			r.Post("/{id}/toggle", s.handleToggleSnippet)
		})
	})

	if s.metrics != nil && s.cfg.Telemetry.Metrics.Enabled {
		path := s.cfg.Telemetry.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, s.metrics.Handler())
	}

	return r
}

// Start runs the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.running = true
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "address", s.cfg.Server.ListenAddress)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown stops the server gracefully, bounded by the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.httpServer == nil {
		return nil
	}
	s.running = false

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
