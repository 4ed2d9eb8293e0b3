// Package calcom declares the Cal.com v2 API tool descriptors served by this
// adapter. Each descriptor maps one MCP tool to one upstream REST call; the
// package holds data only, with no dispatch logic of its own.
package calcom

import (
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// DefaultBaseURL is the Cal.com v2 API root used when no api.url is configured.
const DefaultBaseURL = "https://api.cal.com/v2"

// schedulesAPIVersion is required by the Cal.com schedules endpoints, which
// reject requests without an explicit cal-api-version header.
const schedulesAPIVersion = "2024-06-11"

// Tools returns the full set of verified tool descriptors in registration
// order. The slice is freshly allocated on each call.
func Tools() []mcp.CatalogTool {
	var tools []mcp.CatalogTool
	tools = append(tools, ScheduleTools()...)
	tools = append(tools, VerifiedResourceTools()...)
	tools = append(tools, WebhookTools()...)
	return tools
}

// NewCatalog builds the validated catalog of all verified tools.
func NewCatalog() (*mcp.Catalog, error) {
	return mcp.NewCatalog(Tools())
}
