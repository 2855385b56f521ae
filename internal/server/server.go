// Package server implements the gvmanaged HTTP render service.
//
// # Endpoints
//
//   - POST /render: build the manifest in the request body and return the
//     rendered artifact. Query parameters: format (dot, svg, png, jpg),
//     type (toml, yaml, json; otherwise taken from Content-Type) and
//     refresh (bypass the artifact cache).
//   - GET /kinds: the registered diagram kinds as a JSON array, optionally
//     filtered with ?prefix=.
//   - GET /healthz: liveness probe.
//
// Failures are reported as JSON objects carrying the error code, a message
// and the request ID. Every response carries an X-Request-ID header.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gvmanaged/pkg/cache"
	"github.com/matzehuels/gvmanaged/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	shutdownTimeout     = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	// Addr is the listen address. Empty means [DefaultAddr].
	Addr string

	// Cache stores rendered artifacts. Nil disables caching.
	Cache cache.Cache

	// TTL bounds how long artifacts stay cached. Zero means
	// [pipeline.DefaultTTL].
	TTL time.Duration

	// IconDir, when set, replaces the icon_dir of every diagram manifest.
	IconDir string

	// MaxBodyBytes limits manifest size. Zero means [DefaultMaxBodyBytes].
	MaxBodyBytes int64

	Logger *log.Logger
}

// Server serves the render API.
type Server struct {
	addr    string
	iconDir string
	maxBody int64
	runner  *pipeline.Runner
	logger  *log.Logger
	router  chi.Router
}

// New creates a server and registers its routes.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.TTL == 0 {
		cfg.TTL = pipeline.DefaultTTL
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:    cfg.Addr,
		iconDir: cfg.IconDir,
		maxBody: cfg.MaxBodyBytes,
		runner:  pipeline.NewRunner(cfg.Cache, cfg.TTL, cfg.Logger),
		logger:  cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/kinds", s.handleKinds)
	r.Post("/render", s.handleRender)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Code:      "NOT_FOUND",
			Message:   "no route for " + r.Method + " " + r.URL.Path,
			RequestID: requestIDFrom(r.Context()),
		})
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, for use with httptest or a custom
// http.Server.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully,
// giving in-flight renders a bounded time to finish.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
