// Package service holds the key cache storage, the key-derivation
// authorities and fallback key synthesis.
package service

import (
	"context"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// Authority derives document keys. Failures are returned as
// *keycacheDomain.AuthorityError.
type Authority interface {
	// Derive returns the key for the request's derivation path.
	Derive(ctx context.Context, req keycacheDomain.DerivationRequest) ([]byte, error)

	// Check probes the authority without deriving a document key.
	Check(ctx context.Context) error
}
