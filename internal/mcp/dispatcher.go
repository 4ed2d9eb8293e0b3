package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/calmcp/calcom-mcp/internal/common"
	"github.com/calmcp/calcom-mcp/internal/config"
)

// maxResponseSize caps the upstream response body to prevent OOM from
// unexpectedly large responses.
const maxResponseSize = 10 << 20 // 10MB

// defaultTimeout is used when no per-invocation timeout is configured.
const defaultTimeout = 30 * time.Second

// Dispatcher turns a tool name plus arguments into one authenticated HTTP call
// against the upstream Cal.com API. It owns no mutable state and is safe for
// concurrent use; each invocation performs exactly one outbound request.
type Dispatcher struct {
	baseURL      string
	defaultToken string
	httpClient   *http.Client
	logger       *common.Logger
	catalog      *Catalog
}

// NewDispatcher creates a dispatcher targeting the configured upstream base URL.
// cfg.API.Key, when set, is the process-wide default credential used for
// invocations that carry no per-request token.
func NewDispatcher(cfg *config.Config, catalog *Catalog, logger *common.Logger) *Dispatcher {
	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Dispatcher{
		baseURL:      strings.TrimRight(cfg.API.URL, "/"),
		defaultToken: cfg.API.Key,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		catalog: catalog,
	}
}

// Catalog returns the dispatcher's tool catalog.
func (d *Dispatcher) Catalog() *Catalog {
	return d.catalog
}

// BaseURL returns the configured upstream base URL.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Invoke executes a single tool invocation: lookup, local argument validation,
// request construction, one outbound HTTP call, and success/error normalization.
// On success it returns the raw upstream response body unmodified. All failures
// are *InvokeError values; validation and credential failures are detected
// before any network call is made.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]interface{}) ([]byte, error) {
	ct, ok := d.catalog.Lookup(name)
	if !ok {
		return nil, &InvokeError{Kind: ErrUnknownTool, Message: fmt.Sprintf("unknown tool %q", name)}
	}

	if err := validateArguments(ct, args); err != nil {
		return nil, err
	}

	// Per-request credential takes precedence over the process-wide default.
	token, ok := AuthTokenFromContext(ctx)
	if !ok {
		token = d.defaultToken
	}
	if token == "" {
		return nil, &InvokeError{
			Kind:    ErrMissingCredential,
			Message: fmt.Sprintf("tool %q requires a credential: supply an x-auth-token header or configure api.key", name),
		}
	}

	req, err := d.buildRequest(ctx, ct, args, token)
	if err != nil {
		return nil, err
	}

	d.logger.Debug().Str("method", ct.Method).Str("tool", ct.Name).Str("path", req.URL.Path).Msg("upstream request")

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		d.logger.Error().Str("method", ct.Method).Str("tool", ct.Name).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return nil, &InvokeError{Kind: ErrUpstreamUnreachable, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &InvokeError{Kind: ErrUpstreamUnreachable, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	d.logger.Debug().Str("tool", ct.Name).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("upstream response")

	if resp.StatusCode >= 400 {
		return nil, &InvokeError{Kind: ErrUpstreamError, Status: resp.StatusCode, Body: body}
	}

	return body, nil
}

// validateArguments checks the supplied arguments against the tool's declared
// parameter schema: every required parameter present, every supplied parameter
// recognized. No network call is made when validation fails.
func validateArguments(ct CatalogTool, args map[string]interface{}) error {
	declared := make(map[string]CatalogParam, len(ct.Params))
	for _, p := range ct.Params {
		declared[p.Name] = p
	}

	for name := range args {
		if _, ok := declared[name]; !ok {
			return invalidArguments("unrecognized parameter %q for tool %q", name, ct.Name)
		}
	}

	for _, p := range ct.Params {
		if !p.Required {
			continue
		}
		val, ok := args[p.Name]
		if !ok || val == nil {
			return invalidArguments("missing required parameter %q for tool %q", p.Name, ct.Name)
		}
		if s, isStr := val.(string); isStr && s == "" {
			return invalidArguments("missing required parameter %q for tool %q", p.Name, ct.Name)
		}
	}

	return nil
}

// buildRequest partitions validated arguments into path substitutions, query
// parameters, and body fields, and composes the authenticated upstream request.
func (d *Dispatcher) buildRequest(ctx context.Context, ct CatalogTool, args map[string]interface{}, token string) (*http.Request, error) {
	path := ct.Path
	query := url.Values{}
	bodyFields := map[string]interface{}{}

	for _, p := range ct.Params {
		val, ok := args[p.Name]
		if !ok || val == nil {
			continue
		}
		switch p.In {
		case "path":
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(argString(val)))
		case "query":
			if s := argString(val); s != "" {
				query.Set(p.Name, s)
			}
		case "body":
			bodyFields[p.Name] = val
		}
	}

	fullURL := d.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if methodAllowsBody(ct.Method) && len(bodyFields) > 0 {
		jsonData, err := json.Marshal(bodyFields)
		if err != nil {
			return nil, invalidArguments("failed to encode body for tool %q: %v", ct.Name, err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(ct.Method), fullURL, bodyReader)
	if err != nil {
		return nil, &InvokeError{Kind: ErrUpstreamUnreachable, Cause: err}
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range ct.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// methodAllowsBody reports whether the method carries a JSON request payload.
func methodAllowsBody(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// argString renders an argument value for use in a path or query position.
// JSON numbers arrive as float64; integral values must not pick up a decimal point.
func argString(val interface{}) string {
	if f, ok := val.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(val)
}
