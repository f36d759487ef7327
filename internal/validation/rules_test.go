package validation

import (
	"strings"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/docsim/internal/errors"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		wantErr string
	}{
		{name: "simple", value: "doc-1"},
		{name: "underscore", value: "my_doc_2025"},
		{name: "max length", value: strings.Repeat("a", 64)},
		{name: "empty", value: "", wantErr: "Document ID cannot be empty"},
		{name: "too long", value: strings.Repeat("a", 65), wantErr: "Document ID too long (max 64 characters)"},
		{name: "space", value: "doc 1", wantErr: "alphanumeric"},
		{name: "slash", value: "doc/1", wantErr: "alphanumeric"},
		{name: "not a string", value: 42, wantErr: "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, DocumentID)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestPercentage(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.NoError(t, validation.Validate(0.0, Percentage))
	assert.NoError(t, validation.Validate(100.0, Percentage))
	assert.NoError(t, validation.Validate(f(55.5), Percentage))
	assert.NoError(t, validation.Validate((*float64)(nil), Percentage))
	assert.Error(t, validation.Validate(-0.1, Percentage))
	assert.Error(t, validation.Validate(f(100.1), Percentage))
	assert.Error(t, validation.Validate("50", Percentage))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("hello", NoWhitespace))
	assert.Error(t, validation.Validate(" hello", NoWhitespace))
	assert.Error(t, validation.Validate("hello\n", NoWhitespace))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, validation.Validate("x", NotBlank))
	assert.Error(t, validation.Validate("   ", NotBlank))
}

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(validation.NewError("code", "bad value"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "bad value")
}
