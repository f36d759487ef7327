// Package mocks provides testify mocks for the use cases behind the document handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
)

// MockDocumentUseCase is a mock of usecase.DocumentUseCase.
type MockDocumentUseCase struct {
	mock.Mock
}

func (m *MockDocumentUseCase) Store(
	ctx context.Context,
	input documentUsecase.StoreInput,
) (*documentDomain.StoreResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.StoreResult), args.Error(1)
}

func (m *MockDocumentUseCase) EncryptAndStore(
	ctx context.Context,
	input documentUsecase.EncryptInput,
) (*documentDomain.EncryptResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.EncryptResult), args.Error(1)
}

func (m *MockDocumentUseCase) Get(ctx context.Context, id string) (*documentDomain.EncryptedDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.EncryptedDocument), args.Error(1)
}

func (m *MockDocumentUseCase) List(ctx context.Context, owner string) ([]documentDomain.DocumentMetadata, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]documentDomain.DocumentMetadata), args.Error(1)
}

func (m *MockDocumentUseCase) ClearAll(ctx context.Context, principal string) (int, error) {
	args := m.Called(ctx, principal)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentUseCase) Stats(ctx context.Context) (*documentDomain.StoreStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.StoreStats), args.Error(1)
}

func (m *MockDocumentUseCase) Health(ctx context.Context) (*documentDomain.Health, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Health), args.Error(1)
}

// MockConfigUseCase is a mock of usecase.ConfigUseCase.
type MockConfigUseCase struct {
	mock.Mock
}

func (m *MockConfigUseCase) Get(ctx context.Context) (*documentDomain.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Config), args.Error(1)
}

func (m *MockConfigUseCase) Update(
	ctx context.Context,
	patch *documentDomain.ConfigPatch,
) (*documentDomain.Config, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documentDomain.Config), args.Error(1)
}
