// Package mocks provides testify mocks for the key cache use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	keycacheUsecase "github.com/allisson/docsim/internal/keycache/usecase"
)

// MockKeyCacheUseCase is a mock of usecase.KeyCacheUseCase.
type MockKeyCacheUseCase struct {
	mock.Mock
}

func (m *MockKeyCacheUseCase) Resolve(
	ctx context.Context,
	principal, documentID string,
) (*keycacheDomain.KeySource, error) {
	args := m.Called(ctx, principal, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keycacheDomain.KeySource), args.Error(1)
}

func (m *MockKeyCacheUseCase) BatchDerive(
	ctx context.Context,
	principal string,
	documentIDs []string,
) ([]keycacheUsecase.BatchResult, error) {
	args := m.Called(ctx, principal, documentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]keycacheUsecase.BatchResult), args.Error(1)
}

func (m *MockKeyCacheUseCase) Metrics(ctx context.Context) keycacheDomain.Metrics {
	args := m.Called(ctx)
	return args.Get(0).(keycacheDomain.Metrics)
}

func (m *MockKeyCacheUseCase) ResetMetrics(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockKeyCacheUseCase) CacheStats(ctx context.Context) keycacheDomain.CacheStats {
	args := m.Called(ctx)
	return args.Get(0).(keycacheDomain.CacheStats)
}

func (m *MockKeyCacheUseCase) ClearCache(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockKeyCacheUseCase) SecurityEvents(ctx context.Context) []keycacheDomain.SecurityEvent {
	args := m.Called(ctx)
	return args.Get(0).([]keycacheDomain.SecurityEvent)
}

func (m *MockKeyCacheUseCase) LogSecurityEvent(
	ctx context.Context,
	eventType keycacheDomain.SecurityEventType,
	principal, details string,
) {
	m.Called(ctx, eventType, principal, details)
}

func (m *MockKeyCacheUseCase) CheckAuthority(ctx context.Context) keycacheUsecase.AuthorityStatus {
	args := m.Called(ctx)
	return args.Get(0).(keycacheUsecase.AuthorityStatus)
}
