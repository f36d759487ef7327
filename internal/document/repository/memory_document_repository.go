// Package repository persists encrypted documents and the store configuration
// in memory, PostgreSQL or MySQL.
package repository

import (
	"context"
	"sort"
	"sync"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
)

// MemoryDocumentRepository keeps documents in process memory.
type MemoryDocumentRepository struct {
	mu   sync.RWMutex
	docs map[string]*documentDomain.EncryptedDocument
}

// NewMemoryDocumentRepository creates an empty in-memory repository.
func NewMemoryDocumentRepository() *MemoryDocumentRepository {
	return &MemoryDocumentRepository{docs: make(map[string]*documentDomain.EncryptedDocument)}
}

// Create stores a copy of doc. It fails with ErrDocumentExists on id collision.
func (m *MemoryDocumentRepository) Create(ctx context.Context, doc *documentDomain.EncryptedDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[doc.ID]; ok {
		return documentDomain.ErrDocumentExists
	}
	m.docs[doc.ID] = cloneDocument(doc)
	return nil
}

func (m *MemoryDocumentRepository) Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, documentDomain.ErrDocumentNotFound
	}
	return cloneDocument(doc), nil
}

func (m *MemoryDocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.docs[id]
	return ok, nil
}

// Delete removes a document; deleting a missing id is not an error.
func (m *MemoryDocumentRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, id)
	return nil
}

func (m *MemoryDocumentRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.docs), nil
}

// List returns metadata ordered by timestamp then id. An empty owner lists every document.
func (m *MemoryDocumentRepository) List(
	ctx context.Context,
	owner string,
) ([]documentDomain.DocumentMetadata, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]documentDomain.DocumentMetadata, 0, len(m.docs))
	for _, doc := range m.docs {
		if owner != "" && doc.Owner != owner {
			continue
		}
		out = append(out, doc.Metadata())
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteAll empties the repository and reports how many documents were removed.
func (m *MemoryDocumentRepository) DeleteAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.docs)
	m.docs = make(map[string]*documentDomain.EncryptedDocument)
	return n, nil
}

func cloneDocument(doc *documentDomain.EncryptedDocument) *documentDomain.EncryptedDocument {
	c := *doc
	c.Tokens = make([][]byte, len(doc.Tokens))
	for i, t := range doc.Tokens {
		c.Tokens[i] = append([]byte(nil), t...)
	}
	if doc.Title != nil {
		title := *doc.Title
		c.Title = &title
	}
	if doc.PublicKey != nil {
		pk := *doc.PublicKey
		c.PublicKey = &pk
	}
	return &c
}

// MemoryConfigRepository keeps the store configuration in process memory.
type MemoryConfigRepository struct {
	mu  sync.RWMutex
	cfg *documentDomain.Config
}

// NewMemoryConfigRepository creates a repository with no saved configuration.
func NewMemoryConfigRepository() *MemoryConfigRepository {
	return &MemoryConfigRepository{}
}

// Get returns ErrNotFound until Save is called.
func (m *MemoryConfigRepository) Get(ctx context.Context) (*documentDomain.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cfg == nil {
		return nil, errConfigNotFound
	}
	cfg := *m.cfg
	return &cfg, nil
}

func (m *MemoryConfigRepository) Save(ctx context.Context, cfg documentDomain.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cfg = &cfg
	return nil
}
