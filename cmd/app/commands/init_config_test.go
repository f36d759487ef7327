package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/document/http/dto"
	documentMocks "github.com/allisson/docsim/internal/document/http/mocks"
)

func TestRunInitConfig(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := documentDomain.DefaultConfig()

	t.Run("text", func(t *testing.T) {
		configUseCase := &documentMocks.MockConfigUseCase{}
		configUseCase.On("Update", ctx, &documentDomain.ConfigPatch{}).Return(&defaults, nil)

		var out bytes.Buffer
		err := RunInitConfig(ctx, configUseCase, logger, &out, "text")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "MAX_DOCUMENTS=1000")
		assert.Contains(t, out.String(), "DUPLICATE_THRESHOLD=95.0")
		configUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		configUseCase := &documentMocks.MockConfigUseCase{}
		configUseCase.On("Update", ctx, mock.Anything).Return(&defaults, nil)

		var out bytes.Buffer
		err := RunInitConfig(ctx, configUseCase, logger, &out, "json")
		require.NoError(t, err)

		var response dto.ConfigResponse
		require.NoError(t, json.Unmarshal(out.Bytes(), &response))
		assert.Equal(t, 10000, response.MaxTokens)
		assert.Equal(t, 80.0, response.FingerprintThreshold)
	})

	t.Run("update-error", func(t *testing.T) {
		configUseCase := &documentMocks.MockConfigUseCase{}
		configUseCase.On("Update", ctx, mock.Anything).Return(nil, errors.New("db down"))

		err := RunInitConfig(ctx, configUseCase, logger, &bytes.Buffer{}, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save store configuration")
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunInitConfig(ctx, nil, logger, &bytes.Buffer{}, "xml")
		require.Error(t, err)
	})
}
