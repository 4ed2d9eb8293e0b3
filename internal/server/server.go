package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/calmcp/calcom-mcp/internal/common"
	"github.com/calmcp/calcom-mcp/internal/config"
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// Server manages the HTTP server and routes.
type Server struct {
	config *config.Config
	mcp    *mcp.Handler
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New creates a new HTTP server hosting the MCP transports and the API routes.
func New(cfg *config.Config, mcpHandler *mcp.Handler, logger *common.Logger) *Server {
	s := &Server{
		config: cfg,
		mcp:    mcpHandler,
		logger: logger,
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.withMiddleware(s.router),
		ReadTimeout: 30 * time.Second,
		// No WriteTimeout: SSE connections stay open indefinitely.
		IdleTimeout: 120 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
