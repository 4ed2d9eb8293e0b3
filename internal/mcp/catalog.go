package mcp

import (
	"fmt"
	"strings"
)

// allowedMethods is the whitelist of HTTP methods for catalog tools.
var allowedMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true, "DELETE": true,
}

// allowedLocations is the set of valid parameter locations.
var allowedLocations = map[string]bool{
	"path": true, "query": true, "body": true,
}

// CatalogTool describes one tool: a named operation mapping to exactly one
// upstream HTTP call.
type CatalogTool struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Method      string            `json:"method"`
	Path        string            `json:"path"` // template, e.g. /schedules/{scheduleId}
	Params      []CatalogParam    `json:"params"`
	Headers     map[string]string `json:"headers,omitempty"` // static headers, e.g. cal-api-version
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, boolean, array, object
	Items       string `json:"items,omitempty"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	In          string `json:"in"` // path, query, body
}

// pathPlaceholders extracts {name} placeholders from a path template.
func pathPlaceholders(path string) []string {
	var names []string
	for {
		open := strings.Index(path, "{")
		if open < 0 {
			return names
		}
		close := strings.Index(path[open:], "}")
		if close < 0 {
			return names
		}
		names = append(names, path[open+1:open+close])
		path = path[open+close+1:]
	}
}

// ValidateCatalogTool validates a single catalog tool entry.
// Descriptor problems are configuration errors: every path-template placeholder
// must be declared as a path parameter and vice versa.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Method == "" {
		return fmt.Errorf("tool %q has empty method", ct.Name)
	}
	if !allowedMethods[strings.ToUpper(ct.Method)] {
		return fmt.Errorf("tool %q has unsupported method %q", ct.Name, ct.Method)
	}
	if ct.Path == "" {
		return fmt.Errorf("tool %q has empty path", ct.Name)
	}
	if !strings.HasPrefix(ct.Path, "/") {
		return fmt.Errorf("tool %q has invalid path %q (must start with /)", ct.Name, ct.Path)
	}
	if strings.Contains(ct.Path, "..") {
		return fmt.Errorf("tool %q has invalid path %q (contains ..)", ct.Name, ct.Path)
	}

	pathParams := map[string]bool{}
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		if !allowedLocations[p.In] {
			return fmt.Errorf("tool %q parameter %q has invalid location %q", ct.Name, p.Name, p.In)
		}
		if p.In == "path" {
			pathParams[p.Name] = true
		}
	}

	placeholders := pathPlaceholders(ct.Path)
	for _, name := range placeholders {
		if !pathParams[name] {
			return fmt.Errorf("tool %q path placeholder {%s} is not declared as a path parameter", ct.Name, name)
		}
	}
	if len(placeholders) != len(pathParams) {
		for name := range pathParams {
			found := false
			for _, ph := range placeholders {
				if ph == name {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("tool %q path parameter %q has no {%s} placeholder in path %q", ct.Name, name, name, ct.Path)
			}
		}
	}

	return nil
}

// Catalog is an immutable lookup table of tool descriptors, built once at
// startup and shared freely across concurrent invocations.
type Catalog struct {
	tools []CatalogTool
	index map[string]int
}

// NewCatalog validates the given descriptors and builds an immutable catalog.
// Any invalid or duplicate entry is a configuration error and fails construction.
func NewCatalog(tools []CatalogTool) (*Catalog, error) {
	c := &Catalog{
		tools: make([]CatalogTool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}
	for _, ct := range tools {
		if err := ValidateCatalogTool(ct); err != nil {
			return nil, err
		}
		if _, dup := c.index[ct.Name]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", ct.Name)
		}
		c.index[ct.Name] = len(c.tools)
		c.tools = append(c.tools, ct)
	}
	return c, nil
}

// Lookup returns the descriptor for the given tool name.
func (c *Catalog) Lookup(name string) (CatalogTool, bool) {
	i, ok := c.index[name]
	if !ok {
		return CatalogTool{}, false
	}
	return c.tools[i], true
}

// Tools returns a copy of all descriptors in registration order.
func (c *Catalog) Tools() []CatalogTool {
	result := make([]CatalogTool, len(c.tools))
	copy(result, c.tools)
	return result
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int {
	return len(c.tools)
}
