package mcp

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calmcp/calcom-mcp/internal/common"
	"github.com/calmcp/calcom-mcp/internal/config"
)

// --- Helpers ---

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testConfig(apiURL string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.API.URL = apiURL
	return cfg
}

// testCatalog returns a small catalog exercising every parameter location.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog([]CatalogTool{
		{
			Name:        "cal_get_schedule",
			Description: "Get a specific schedule by its ID.",
			Method:      "GET",
			Path:        "/schedules/{scheduleId}",
			Headers:     map[string]string{"cal-api-version": "2024-06-11"},
			Params: []CatalogParam{
				{Name: "scheduleId", Type: "number", Required: true, In: "path"},
			},
		},
		{
			Name:        "cal_delete_a_schedule",
			Description: "Delete a schedule by its ID.",
			Method:      "DELETE",
			Path:        "/schedules/{scheduleId}",
			Params: []CatalogParam{
				{Name: "scheduleId", Type: "number", Required: true, In: "path"},
			},
		},
		{
			Name:        "cal_get_all_webhooks",
			Description: "List webhooks.",
			Method:      "GET",
			Path:        "/webhooks",
			Params: []CatalogParam{
				{Name: "take", Type: "number", In: "query"},
				{Name: "skip", Type: "number", In: "query"},
			},
		},
		{
			Name:        "cal_create_webhook",
			Description: "Create a webhook.",
			Method:      "POST",
			Path:        "/webhooks",
			Params: []CatalogParam{
				{Name: "active", Type: "boolean", Required: true, In: "body"},
				{Name: "subscriberUrl", Type: "string", Required: true, In: "body"},
				{Name: "triggers", Type: "array", Required: true, In: "body"},
				{Name: "secret", Type: "string", In: "body"},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return catalog
}

func newTestDispatcher(t *testing.T, apiURL string) *Dispatcher {
	t.Helper()
	return NewDispatcher(testConfig(apiURL), testCatalog(t), testLogger())
}

// recordedRequest captures what the mock upstream saw.
type recordedRequest struct {
	method string
	path   string
	uri    string
	query  string
	header http.Header
	body   []byte
	count  int
}

// mockUpstream starts an httptest server that records the last request and
// replies with the given status and body.
func mockUpstream(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.count++
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.uri = r.RequestURI
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		buf := new(bytes.Buffer)
		buf.ReadFrom(r.Body)
		rec.body = buf.Bytes()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func invokeKind(t *testing.T, err error) ErrorKind {
	t.Helper()
	var ie *InvokeError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvokeError, got %T: %v", err, err)
	}
	return ie.Kind
}

// --- Path substitution and credential forwarding ---

func TestInvoke_PathSubstitution(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{"status":"success"}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok_abc")
	body, err := d.Invoke(ctx, "cal_get_schedule", map[string]interface{}{"scheduleId": float64(123)})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if rec.method != "GET" {
		t.Errorf("expected GET, got %s", rec.method)
	}
	if rec.path != "/schedules/123" {
		t.Errorf("expected path /schedules/123, got %s", rec.path)
	}
	if got := rec.header.Get("Authorization"); got != "Bearer tok_abc" {
		t.Errorf("expected Authorization 'Bearer tok_abc', got %q", got)
	}
	if string(body) != `{"status":"success"}` {
		t.Errorf("expected upstream body passed through, got %q", string(body))
	}
}

func TestInvoke_IntegralNumberHasNoDecimalPoint(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_schedule", map[string]interface{}{"scheduleId": float64(456)}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if rec.path != "/schedules/456" {
		t.Errorf("expected integral path segment 456, got path %s", rec.path)
	}
}

func TestInvoke_PathValueEscaped(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	catalog, err := NewCatalog([]CatalogTool{
		{
			Name: "cal_get_webhook", Method: "GET", Path: "/webhooks/{webhookId}",
			Params: []CatalogParam{{Name: "webhookId", Type: "string", Required: true, In: "path"}},
		},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	d := NewDispatcher(testConfig(srv.URL), catalog, testLogger())

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_webhook", map[string]interface{}{"webhookId": "a/b c"}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	// The raw value must not introduce extra path segments.
	if rec.uri != "/webhooks/a%2Fb%20c" {
		t.Errorf("expected escaped path value, got request URI %q", rec.uri)
	}
}

// --- Local failures make no network call ---

func TestInvoke_UnknownTool(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	_, err := d.Invoke(WithAuthToken(t.Context(), "tok"), "cal_no_such_tool", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if kind := invokeKind(t, err); kind != ErrUnknownTool {
		t.Errorf("expected ErrUnknownTool, got %s", kind)
	}
	if rec.count != 0 {
		t.Errorf("expected no upstream request, got %d", rec.count)
	}
}

func TestInvoke_UnrecognizedParameter(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	_, err := d.Invoke(WithAuthToken(t.Context(), "tok"), "cal_get_all_webhooks", map[string]interface{}{"bogus": "x"})
	if err == nil {
		t.Fatal("expected error for unrecognized parameter")
	}
	if kind := invokeKind(t, err); kind != ErrInvalidArguments {
		t.Errorf("expected ErrInvalidArguments, got %s", kind)
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected error to name the parameter, got %q", err.Error())
	}
	if rec.count != 0 {
		t.Errorf("expected no upstream request, got %d", rec.count)
	}
}

func TestInvoke_MissingRequiredParameter(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	_, err := d.Invoke(WithAuthToken(t.Context(), "tok"), "cal_get_schedule", map[string]interface{}{})
	if err == nil {
		t.Fatal("expected error for missing required parameter")
	}
	if kind := invokeKind(t, err); kind != ErrInvalidArguments {
		t.Errorf("expected ErrInvalidArguments, got %s", kind)
	}
	if rec.count != 0 {
		t.Errorf("expected no upstream request, got %d", rec.count)
	}
}

func TestInvoke_EmptyStringRequiredParameter(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	_, err := d.Invoke(WithAuthToken(t.Context(), "tok"), "cal_create_webhook", map[string]interface{}{
		"active":        true,
		"subscriberUrl": "",
		"triggers":      []interface{}{"BOOKING_CREATED"},
	})
	if err == nil {
		t.Fatal("expected error for empty required string")
	}
	if kind := invokeKind(t, err); kind != ErrInvalidArguments {
		t.Errorf("expected ErrInvalidArguments, got %s", kind)
	}
	if rec.count != 0 {
		t.Errorf("expected no upstream request, got %d", rec.count)
	}
}

func TestInvoke_MissingCredential(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL) // no api.key configured

	_, err := d.Invoke(t.Context(), "cal_delete_a_schedule", map[string]interface{}{"scheduleId": float64(1)})
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	if kind := invokeKind(t, err); kind != ErrMissingCredential {
		t.Errorf("expected ErrMissingCredential, got %s", kind)
	}
	if rec.count != 0 {
		t.Errorf("expected no upstream request, got %d", rec.count)
	}
}

// --- Credential resolution ---

func TestInvoke_DefaultCredential(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	cfg := testConfig(srv.URL)
	cfg.API.Key = "default_key"
	d := NewDispatcher(cfg, testCatalog(t), testLogger())

	if _, err := d.Invoke(t.Context(), "cal_get_all_webhooks", nil); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := rec.header.Get("Authorization"); got != "Bearer default_key" {
		t.Errorf("expected default credential, got %q", got)
	}
}

func TestInvoke_RequestTokenOverridesDefault(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	cfg := testConfig(srv.URL)
	cfg.API.Key = "default_key"
	d := NewDispatcher(cfg, testCatalog(t), testLogger())

	ctx := WithAuthToken(t.Context(), "request_key")
	if _, err := d.Invoke(ctx, "cal_get_all_webhooks", nil); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := rec.header.Get("Authorization"); got != "Bearer request_key" {
		t.Errorf("expected request credential to win, got %q", got)
	}
}

// --- Request construction ---

func TestInvoke_QueryParameters(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_all_webhooks", map[string]interface{}{"take": float64(50)}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if rec.query != "take=50" {
		t.Errorf("expected query 'take=50', got %q", rec.query)
	}
	if len(rec.body) != 0 {
		t.Errorf("expected no request body for GET, got %q", string(rec.body))
	}
}

func TestInvoke_OmittedOptionalQueryNotSent(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_all_webhooks", nil); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if rec.query != "" {
		t.Errorf("expected empty query, got %q", rec.query)
	}
}

func TestInvoke_BodyPartitioning(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	_, err := d.Invoke(ctx, "cal_create_webhook", map[string]interface{}{
		"active":        true,
		"subscriberUrl": "https://example.com/hook",
		"triggers":      []interface{}{"BOOKING_CREATED", "BOOKING_CANCELLED"},
		"secret":        "s3cret",
	})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if got := rec.header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
	body := string(rec.body)
	for _, want := range []string{`"active":true`, `"subscriberUrl":"https://example.com/hook"`, `"BOOKING_CREATED"`, `"secret":"s3cret"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %s, got %s", want, body)
		}
	}
	if rec.query != "" {
		t.Errorf("expected no query parameters, got %q", rec.query)
	}
}

func TestInvoke_StaticHeaders(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_schedule", map[string]interface{}{"scheduleId": float64(9)}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	if got := rec.header.Get("cal-api-version"); got != "2024-06-11" {
		t.Errorf("expected cal-api-version header, got %q", got)
	}
}

// --- Upstream failures ---

func TestInvoke_UpstreamErrorPreservesStatusAndBody(t *testing.T) {
	srv, _ := mockUpstream(t, http.StatusNotFound, `{"error":"not found"}`)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	_, err := d.Invoke(ctx, "cal_get_schedule", map[string]interface{}{"scheduleId": float64(999)})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var ie *InvokeError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvokeError, got %T", err)
	}
	if ie.Kind != ErrUpstreamError {
		t.Errorf("expected ErrUpstreamError, got %s", ie.Kind)
	}
	if ie.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", ie.Status)
	}
	if string(ie.Body) != `{"error":"not found"}` {
		t.Errorf("expected upstream error body preserved, got %q", string(ie.Body))
	}
	if !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected message to carry status and body, got %q", err.Error())
	}
}

func TestInvoke_UpstreamUnreachable(t *testing.T) {
	catalog := testCatalog(t)
	d := NewDispatcher(testConfig("http://127.0.0.1:1"), catalog, testLogger())

	ctx := WithAuthToken(t.Context(), "tok")
	_, err := d.Invoke(ctx, "cal_get_all_webhooks", nil)
	if err == nil {
		t.Fatal("expected error when upstream is down")
	}
	if kind := invokeKind(t, err); kind != ErrUpstreamUnreachable {
		t.Errorf("expected ErrUpstreamUnreachable, got %s", kind)
	}
}

// --- Passthrough ---

func TestInvoke_BodyPassedThroughVerbatim(t *testing.T) {
	payload := "{\n  \"data\": [1, 2, 3],\n  \"note\": \"whitespace preserved\"\n}"
	srv, _ := mockUpstream(t, http.StatusOK, payload)
	d := newTestDispatcher(t, srv.URL)

	ctx := WithAuthToken(t.Context(), "tok")
	body, err := d.Invoke(ctx, "cal_get_all_webhooks", nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if string(body) != payload {
		t.Errorf("expected byte-for-byte passthrough, got %q", string(body))
	}
}

func TestInvoke_TrailingSlashBaseURL(t *testing.T) {
	srv, rec := mockUpstream(t, http.StatusOK, `{}`)
	d := NewDispatcher(testConfig(srv.URL+"/"), testCatalog(t), testLogger())

	ctx := WithAuthToken(t.Context(), "tok")
	if _, err := d.Invoke(ctx, "cal_get_all_webhooks", nil); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if rec.path != "/webhooks" {
		t.Errorf("expected path /webhooks, got %q", rec.path)
	}
}
