// Package server provides the read-only HTTP API over the shared inverted
// index: search, health, and index statistics.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/lexicon/internal/config"
	"github.com/hyperjump/lexicon/internal/index"
	"github.com/hyperjump/lexicon/internal/queryproc"
	"go.uber.org/zap"
)

// Server is the HTTP server over the shared index and query processor.
type Server struct {
	idx    *index.ThreadSafe
	proc   *queryproc.Processor
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// New creates a Server that serves searches against idx via proc.
func New(idx *index.ThreadSafe, proc *queryproc.Processor, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{idx: idx, proc: proc, config: cfg, logger: logger}
}

// router builds the chi router with the handler set exposed by the server.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/stats", s.handleStats)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
