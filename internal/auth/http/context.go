// Package http provides the caller-identity middleware and per-principal
// rate limiting.
package http

import (
	"context"
)

// principalKey is a context key type for storing the caller identity.
type principalKey struct{}

// WithPrincipal stores the caller identity in the context.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the caller identity from the context.
// Returns ("", false) if no identity was set.
func GetPrincipal(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalKey{}).(string)
	return principal, ok && principal != ""
}
