package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/docsim/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:       "not found",
			err:        apperrors.Wrap(apperrors.ErrNotFound, "document not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:        "conflict",
			err:         apperrors.Wrap(apperrors.ErrConflict, "Already initialized"),
			wantStatus:  http.StatusConflict,
			wantCode:    "conflict",
			wantMessage: "Already initialized: conflict",
		},
		{
			name:        "invalid input keeps message",
			err:         apperrors.Wrap(apperrors.ErrInvalidInput, "Too many tokens. Maximum: 50"),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "invalid_input",
			wantMessage: "Too many tokens. Maximum: 50: invalid input",
		},
		{
			name:       "capacity",
			err:        apperrors.Wrap(apperrors.ErrCapacityExceeded, "Document limit reached: 2"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "capacity_exceeded",
		},
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:       "forbidden",
			err:        apperrors.Wrap(apperrors.ErrForbidden, "Unauthorized: only owner can clear documents"),
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "budget",
			err:        apperrors.ErrBudgetExceeded,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "budget_exceeded",
		},
		{
			name:       "not initialized",
			err:        apperrors.Wrap(apperrors.ErrNotInitialized, "Paillier not initialized"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "not_initialized",
		},
		{
			name:       "authority",
			err:        apperrors.Wrap(apperrors.ErrAuthority, "not available"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "authority_error",
		},
		{
			name:        "corrupted data stays generic",
			err:         apperrors.Wrap(apperrors.ErrCorrupted, "token blob truncated"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "An internal error occurred",
		},
		{
			name:        "unknown",
			err:         errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "internal_error",
			wantMessage: "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body.Message)
			}
		})
	}
}

func TestHandleErrorGin_NilIsNoop(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)
	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleValidationErrorGin(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("document_id: cannot be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"document_id: cannot be blank"}`, w.Body.String())
}
