// Package server exposes the launcher plugin over HTTP so other frontends
// can query qalc without linking against this module.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shahar-caura/qalcrun/internal/launcher"
)

// Server is the qalcrun HTTP server.
type Server struct {
	port      int
	version   string
	keyword   string
	startTime time.Time
	plugin    *launcher.Plugin
	validator *requestValidator
	logger    *slog.Logger
}

// New creates a Server answering queries with plugin. keyword is reported as
// the action keyword of explicit queries.
func New(port int, version, keyword string, plugin *launcher.Plugin, logger *slog.Logger) (*Server, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		port:      port,
		version:   version,
		keyword:   keyword,
		startTime: time.Now(),
		plugin:    plugin,
		validator: v,
		logger:    logger,
	}, nil
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/classify", s.handleClassify)
	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("server started", "addr", ln.Addr().String())

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
