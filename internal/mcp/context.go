package mcp

import "context"

// authTokenKey is the context key for the per-request upstream credential.
type authTokenKey struct{}

// WithAuthToken returns a new context carrying the caller-supplied credential.
// The token is held only for the lifetime of the request and is never logged.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

// AuthTokenFromContext extracts the per-request credential, if present.
func AuthTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenKey{}).(string)
	return token, ok && token != ""
}
