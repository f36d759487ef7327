// Package mocks provides testify mocks for the document use case dependencies.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// MockDocumentRepository is a mock of usecase.DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *documentDomain.EncryptedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.EncryptedDocument), args.Error(1)
}

func (m *MockDocumentRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) List(ctx context.Context, owner string) ([]documentDomain.DocumentMetadata, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documentDomain.DocumentMetadata), args.Error(1)
}

func (m *MockDocumentRepository) DeleteAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockConfigRepository is a mock of usecase.ConfigRepository.
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Get(ctx context.Context) (*documentDomain.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Config), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, cfg documentDomain.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockKeyResolver is a mock of usecase.KeyResolver.
type MockKeyResolver struct {
	mock.Mock
}

func (m *MockKeyResolver) Resolve(
	ctx context.Context,
	principal, documentID string,
) (*keycacheDomain.KeySource, error) {
	args := m.Called(ctx, principal, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keycacheDomain.KeySource), args.Error(1)
}

// MockEncryptor is a mock of usecase.Encryptor.
type MockEncryptor struct {
	mock.Mock
}

func (m *MockEncryptor) KeyPair(ctx context.Context) (*cryptoDomain.KeyPair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.KeyPair), args.Error(1)
}

func (m *MockEncryptor) EncryptBatch(
	ctx context.Context,
	principal string,
	tokens [][]byte,
) (*cryptoDomain.EncryptBatchResult, error) {
	args := m.Called(ctx, principal, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoDomain.EncryptBatchResult), args.Error(1)
}
