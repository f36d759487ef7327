// Package usecase implements the document store operations: content-addressed
// storage, metered encrypt-and-store, listing, owner-gated clearing and the
// store configuration.
package usecase

import (
	"context"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// DocumentRepository persists encrypted documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *documentDomain.EncryptedDocument) error
	Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, owner string) ([]documentDomain.DocumentMetadata, error)
	DeleteAll(ctx context.Context) (int, error)
}

// ConfigRepository persists the store configuration.
type ConfigRepository interface {
	Get(ctx context.Context) (*documentDomain.Config, error)
	Save(ctx context.Context, cfg documentDomain.Config) error
}

// KeyResolver resolves the key scoped to a document.
type KeyResolver interface {
	Resolve(ctx context.Context, principal, documentID string) (*keycacheDomain.KeySource, error)
}

// Encryptor runs metered encryption batches under the process keypair.
type Encryptor interface {
	KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error)
	EncryptBatch(ctx context.Context, principal string, tokens [][]byte) (*cryptoDomain.EncryptBatchResult, error)
}

// StoreInput is a content-addressed store request.
type StoreInput struct {
	Owner     string
	Title     *string
	Tokens    [][]byte
	PublicKey *cryptoDomain.PublicKey
}

// EncryptInput is an encrypt-and-store request under a caller-supplied id.
type EncryptInput struct {
	Principal  string
	DocumentID string
	Title      *string
	Tokens     [][]byte
}

// DocumentUseCase defines the document store operations.
type DocumentUseCase interface {
	// Store saves ciphertext tokens under their content id. Re-storing the same
	// tokens succeeds without a second write.
	Store(ctx context.Context, input StoreInput) (*documentDomain.StoreResult, error)

	// EncryptAndStore encrypts raw tokens and replaces any document with the same id.
	// A budget trip returns a result with Success=false and nothing stored.
	EncryptAndStore(ctx context.Context, input EncryptInput) (*documentDomain.EncryptResult, error)

	Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error)

	// List returns metadata of every document, or only owner's when owner is not empty.
	List(ctx context.Context, owner string) ([]documentDomain.DocumentMetadata, error)

	// ClearAll removes every document. Only the store owner may call it.
	ClearAll(ctx context.Context, principal string) (int, error)

	Stats(ctx context.Context) (*documentDomain.StoreStats, error)
	Health(ctx context.Context) (*documentDomain.Health, error)
}

// ConfigUseCase reads and patches the store configuration.
type ConfigUseCase interface {
	Get(ctx context.Context) (*documentDomain.Config, error)

	// Update validates and applies patch. On error the saved configuration is unchanged.
	Update(ctx context.Context, patch *documentDomain.ConfigPatch) (*documentDomain.Config, error)
}
