// Package usecase runs similarity checks over stored documents and the
// metered homomorphic combination of two documents.
package usecase

import (
	"context"

	"github.com/allisson/docsim/internal/budget"
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	similarityDomain "github.com/allisson/docsim/internal/similarity/domain"
)

// DocumentReader loads stored documents.
type DocumentReader interface {
	Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error)
}

// ConfigReader loads the current store configuration.
type ConfigReader interface {
	Get(ctx context.Context) (*documentDomain.Config, error)
}

// Combiner multiplies ciphertexts under the process keypair.
type Combiner interface {
	KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error)
	Combine(ctx context.Context, c1, c2 []byte) ([]byte, error)
}

// Budget opens per-call meters and reports usage against its threshold.
type Budget interface {
	budget.Starter
	Percent(used uint64) float64
}

// CheckInput compares submitted tokens with a stored document.
type CheckInput struct {
	DocumentID string
	Tokens     [][]byte
	Mode       similarityDomain.Mode
}

// SimilarityUseCase defines the similarity operations.
type SimilarityUseCase interface {
	// Check scores submitted tokens against a stored document in the given mode.
	Check(ctx context.Context, input CheckInput) (*similarityDomain.CheckResult, error)

	// Compare runs a metered positional comparison of two stored documents.
	Compare(ctx context.Context, id1, id2 string) (*similarityDomain.CompareResult, error)

	// Combine accumulates combine(a[i], b[i]) over two equally long documents.
	Combine(ctx context.Context, id1, id2 string) (*similarityDomain.CombineResult, error)
}
