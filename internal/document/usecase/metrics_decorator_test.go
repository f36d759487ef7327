package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/document/http/mocks"
	"github.com/allisson/docsim/internal/document/usecase"
	metricsMocks "github.com/allisson/docsim/internal/metrics/mocks"
)

func TestDocumentUseCaseWithMetrics_Store(t *testing.T) {
	ctx := context.Background()
	input := usecase.StoreInput{Owner: "alice", Tokens: [][]byte{{1}}}

	t.Run("Success", func(t *testing.T) {
		next := &mocks.MockDocumentUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("Store", ctx, input).Return(&documentDomain.StoreResult{Success: true, ID: "x"}, nil)
		m.On("RecordOperation", ctx, "documents", "store", "success").Once()
		m.On("RecordDuration", ctx, "documents", "store", mock.Anything, "success").Once()

		result, err := usecase.NewDocumentUseCaseWithMetrics(next, m).Store(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "x", result.ID)
		m.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		next := &mocks.MockDocumentUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		next.On("Store", ctx, input).Return(nil, documentDomain.ErrStoreFull)
		m.On("RecordOperation", ctx, "documents", "store", "error").Once()
		m.On("RecordDuration", ctx, "documents", "store", mock.Anything, "error").Once()

		_, err := usecase.NewDocumentUseCaseWithMetrics(next, m).Store(ctx, input)
		assert.ErrorIs(t, err, documentDomain.ErrStoreFull)
		m.AssertExpectations(t)
	})
}

func TestDocumentUseCaseWithMetrics_EncryptAndStorePartial(t *testing.T) {
	ctx := context.Background()
	input := usecase.EncryptInput{Principal: "alice", DocumentID: "d"}

	next := &mocks.MockDocumentUseCase{}
	m := &metricsMocks.MockBusinessMetrics{}
	next.On("EncryptAndStore", ctx, input).Return(&documentDomain.EncryptResult{Success: false, TokensEncrypted: 2}, nil)
	m.On("RecordOperation", ctx, "documents", "encrypt_and_store", "partial").Once()
	m.On("RecordDuration", ctx, "documents", "encrypt_and_store", mock.Anything, "partial").Once()

	result, err := usecase.NewDocumentUseCaseWithMetrics(next, m).EncryptAndStore(ctx, input)
	require.NoError(t, err)
	assert.False(t, result.Success)
	m.AssertExpectations(t)
}

func TestDocumentUseCaseWithMetrics_ClearAll(t *testing.T) {
	ctx := context.Background()
	next := &mocks.MockDocumentUseCase{}
	m := &metricsMocks.MockBusinessMetrics{}
	next.On("ClearAll", ctx, "bob").Return(0, errors.New("forbidden"))
	m.On("RecordOperation", ctx, "documents", "clear_all", "error").Once()
	m.On("RecordDuration", ctx, "documents", "clear_all", mock.Anything, "error").Once()

	_, err := usecase.NewDocumentUseCaseWithMetrics(next, m).ClearAll(ctx, "bob")
	assert.Error(t, err)
	m.AssertExpectations(t)
}
