package mcp

import "fmt"

// ErrorKind classifies a failed tool invocation.
type ErrorKind string

const (
	// ErrUnknownTool means the tool name is not in the catalog. Detected locally.
	ErrUnknownTool ErrorKind = "unknown_tool"
	// ErrInvalidArguments means the supplied arguments do not match the tool's
	// declared parameter schema. Detected locally.
	ErrInvalidArguments ErrorKind = "invalid_arguments"
	// ErrMissingCredential means no per-request credential was supplied and no
	// process-wide default is configured. Detected locally.
	ErrMissingCredential ErrorKind = "missing_credential"
	// ErrUpstreamUnreachable means the outbound request failed at the transport
	// level (connection refused, timeout, DNS failure).
	ErrUpstreamUnreachable ErrorKind = "upstream_unreachable"
	// ErrUpstreamError means the upstream responded with a non-success status.
	// Status and Body carry the upstream response verbatim.
	ErrUpstreamError ErrorKind = "upstream_error"
)

// InvokeError is the normalized failure for a single tool invocation.
// Every error is terminal for its invocation; nothing is retried internally.
type InvokeError struct {
	Kind    ErrorKind
	Message string
	Status  int    // set for ErrUpstreamError
	Body    []byte // set for ErrUpstreamError, unmodified upstream error body
	Cause   error  // set for ErrUpstreamUnreachable
}

// Error implements the error interface. Upstream errors preserve the original
// status code and body so diagnostic detail is not lost.
func (e *InvokeError) Error() string {
	switch e.Kind {
	case ErrUpstreamError:
		return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Body)
	case ErrUpstreamUnreachable:
		return fmt.Sprintf("upstream unreachable: %v", e.Cause)
	default:
		return e.Message
	}
}

// Unwrap exposes the transport-level cause for errors.Is/As chains.
func (e *InvokeError) Unwrap() error {
	return e.Cause
}

// invalidArguments builds an ErrInvalidArguments error naming the offending parameter.
func invalidArguments(format string, args ...interface{}) *InvokeError {
	return &InvokeError{Kind: ErrInvalidArguments, Message: fmt.Sprintf(format, args...)}
}
