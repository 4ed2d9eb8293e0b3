package server

import (
	"net/http"

	"github.com/calmcp/calcom-mcp/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP transports: streamable HTTP at /mcp, SSE at /sse with its
	// message endpoint at /messages.
	if s.mcp != nil {
		mux.Handle("/mcp", s.mcp)
		mux.Handle("/sse", s.mcp)
		mux.Handle("/messages", s.mcp)
	}

	// API routes
	healthHandler := handlers.NewHealthHandler(s.logger)
	versionHandler := handlers.NewVersionHandler(s.logger)
	mux.HandleFunc("/api/health", healthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", versionHandler.ServeHTTP)

	// 404 handler for unmatched routes
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
