package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/newsletter-service/internal/config"
)

// Server wraps the HTTP server for the subscription API.
type Server struct {
	cfg    config.ServerConfig
	server *http.Server
}

// NewServer creates an API server around the given handlers.
func NewServer(cfg config.ServerConfig, h *Handlers) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           SetupRoutes(h),
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// ListenAndServe starts the HTTP server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, draining in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
