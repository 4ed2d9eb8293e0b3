package mcp

import (
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calmcp/calcom-mcp/internal/common"
	"github.com/calmcp/calcom-mcp/internal/config"
)

// Handler is the HTTP handler for the MCP endpoints. It wraps mcp-go's
// SSE and streamable HTTP transports and delegates to them after extracting
// the optional per-request credential.
type Handler struct {
	mcpServer  *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	sse        *mcpserver.SSEServer
	dispatcher *Dispatcher
	logger     *common.Logger
}

// NewHandler creates the MCP handler: builds the dispatcher, registers all
// catalog tools, and sets up both transports. The streamable HTTP transport is
// served at /mcp, the SSE transport at /sse with its message endpoint at /messages.
func NewHandler(cfg *config.Config, catalog *Catalog, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"calcom-mcp",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	dispatcher := NewDispatcher(cfg, catalog, logger)
	toolCount := RegisterTools(mcpSrv, dispatcher, catalog)

	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)
	sse := mcpserver.NewSSEServer(mcpSrv,
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/messages"),
	)

	logger.Info().
		Int("tools", toolCount).
		Str("api_url", cfg.API.URL).
		Msg("MCP handler initialized")

	return &Handler{
		mcpServer:  mcpSrv,
		streamable: streamable,
		sse:        sse,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// MCPServer returns the underlying MCP server, used by the stdio transport.
func (h *Handler) MCPServer() *mcpserver.MCPServer {
	return h.mcpServer
}

// Catalog returns a copy of the registered tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	return h.dispatcher.Catalog().Tools()
}

// ServeHTTP extracts the optional x-auth-token header into the request context
// and delegates to the transport matching the request path. The token, when
// present, becomes the per-request credential for every tool call on that
// request and overrides the process-wide default.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r = h.withAuthToken(r)

	if strings.HasPrefix(r.URL.Path, "/mcp") {
		h.streamable.ServeHTTP(w, r)
		return
	}

	// /sse and /messages both belong to the SSE transport.
	h.sse.ServeHTTP(w, r)
}

// withAuthToken attaches the caller-supplied credential to the request context.
// An absent or empty header leaves the request unchanged; credential resolution
// then falls back to the configured default at dispatch time.
func (h *Handler) withAuthToken(r *http.Request) *http.Request {
	token := r.Header.Get("x-auth-token")
	if token == "" {
		return r
	}
	return r.WithContext(WithAuthToken(r.Context(), token))
}
