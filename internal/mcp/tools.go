package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers MCP tools from catalog entries, wiring each to a
// generic handler that dispatches the corresponding upstream HTTP call.
func RegisterTools(s *server.MCPServer, d *Dispatcher, catalog *Catalog) int {
	for _, ct := range catalog.Tools() {
		tool := BuildMCPTool(ct)
		handler := GenericToolHandler(d, ct)
		s.AddTool(tool, handler)
	}
	return catalog.Len()
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	case "array":
		if p.Items == "object" {
			opts = append([]mcp.PropertyOption{mcp.Items(map[string]interface{}{"type": "object"})}, opts...)
		} else {
			opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		}
		return mcp.WithArray(p.Name, opts...)
	case "object":
		return mcp.WithObject(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// GenericToolHandler creates a handler that routes an MCP tool call through the
// dispatcher. Success passes the raw upstream body through as text content;
// failures become error results that preserve the upstream status and body.
func GenericToolHandler(d *Dispatcher, ct CatalogTool) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, err := d.Invoke(ctx, ct.Name, r.GetArguments())
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(body))},
		}, nil
	}
}
