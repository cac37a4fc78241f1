// Package server exposes the exporter over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness and version
//	POST /v1/export     scene JSON in, drawing out (svg, pdf or png)
//	POST /v1/outline    scene JSON in, hierarchy graph out (svg or dot)
//	GET  /v1/scale      parse and round a scale, JSON out
//
// Clients may send X-Session-ID to have the server remember their last
// scale; exports without a scale parameter then use it. Every response
// carries an X-Request-ID.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/scenesvg/pkg/export"
	"github.com/matzehuels/scenesvg/pkg/session"
)

// DefaultMaxBodyBytes limits uploaded scenes.
const DefaultMaxBodyBytes = 32 << 20

// Options configures a Server.
type Options struct {
	// Runner executes exports. Its keyer should be scoped to the API.
	Runner *export.Runner
	// Sessions remembers scales per X-Session-ID. Nil disables sessions.
	Sessions session.Store
	Logger   *log.Logger

	MaxBodyBytes int64
	// ExportTimeout bounds a single export. Zero means no limit.
	ExportTimeout time.Duration
}

// Server is the HTTP API. It is safe for concurrent use.
type Server struct {
	opts   Options
	router chi.Router
}

// New creates a server and registers its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = export.NewRunner(nil, nil, opts.Logger)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{opts: opts}
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/export", s.handleExport)
		r.Post("/outline", s.handleOutline)
		r.Get("/scale", s.handleScale)
	})
	s.router = r
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.opts.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
