// Package domain defines encrypted documents, their identity rules, the
// process-wide store configuration and the persisted record layout.
package domain

import (
	"crypto/sha256"
	"encoding/hex"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// DefaultTitle is reported for documents stored without a title.
const DefaultTitle = "Untitled Document"

// EncryptedDocument is an ordered set of ciphertext tokens owned by a principal.
// Tokens are never mutated once stored.
type EncryptedDocument struct {
	ID        string
	Owner     string
	Title     *string
	Tokens    [][]byte
	Timestamp uint64 // Unix nanoseconds
	PublicKey *cryptoDomain.PublicKey
}

// DisplayTitle returns the title or DefaultTitle.
func (d *EncryptedDocument) DisplayTitle() string {
	if d.Title == nil || *d.Title == "" {
		return DefaultTitle
	}
	return *d.Title
}

// Metadata summarizes a document without its tokens.
func (d *EncryptedDocument) Metadata() DocumentMetadata {
	return DocumentMetadata{
		ID:         d.ID,
		Title:      d.DisplayTitle(),
		TokenCount: len(d.Tokens),
		Timestamp:  d.Timestamp,
		Owner:      d.Owner,
	}
}

// DocumentMetadata is the listing view of a document.
type DocumentMetadata struct {
	ID         string
	Title      string
	TokenCount int
	Timestamp  uint64
	Owner      string
}

// ContentID returns the hex of the first 16 bytes of SHA-256 over the
// concatenated tokens. Equal token sequences always map to the same id.
func ContentID(tokens [][]byte) string {
	h := sha256.New()
	for _, token := range tokens {
		h.Write(token)
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// Store result messages.
const (
	MessageStored        = "Document stored successfully"
	MessageAlreadyExists = "Document already exists with this ID"
)

// StoreResult is returned by store operations.
type StoreResult struct {
	Success bool
	ID      string
	Message string
}

// EncryptResult is returned by encrypt-and-store. On a budget trip Success is
// false and TokensEncrypted counts the tokens finished before the stop.
type EncryptResult struct {
	Success         bool
	ID              string
	TokensEncrypted int
	UnitsUsed       uint64
	KeySource       string
	Error           string
}

// StoreStats is the administrative snapshot of the store.
type StoreStats struct {
	TotalDocuments int
	Config         Config
	Initialized    bool
}

// Health is the readiness report of the store.
type Health struct {
	Initialized bool
	Documents   int
	MemoryKB    uint64
}
