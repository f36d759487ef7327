// Package usecase owns the process keypair and runs metered encryption batches.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// PrimitiveUseCase manages the one-shot keypair and batch encryption.
type PrimitiveUseCase interface {
	// Initialize generates the process keypair. A second call fails with ErrAlreadyInitialized.
	Initialize(ctx context.Context, principal string) (*cryptoDomain.KeyPair, error)

	// KeyPair returns the keypair or ErrNotInitialized.
	KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error)

	// EncryptBatch encrypts tokens in order, checking the budget every EncryptStride tokens.
	EncryptBatch(ctx context.Context, principal string, tokens [][]byte) (*cryptoDomain.EncryptBatchResult, error)

	// Combine multiplies two ciphertexts under the process keypair.
	Combine(ctx context.Context, c1, c2 []byte) ([]byte, error)
}
