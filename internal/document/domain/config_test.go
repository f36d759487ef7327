package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/docsim/internal/errors"
)

func ptr[T any](v T) *T { return &v }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.MaxDocuments)
	assert.Equal(t, 10000, cfg.MaxTokens)
	assert.Equal(t, 95.0, cfg.DuplicateThreshold)
	assert.False(t, cfg.CheckAllDocuments)
	assert.Equal(t, 50, cfg.FingerprintSize)
	assert.Equal(t, 80.0, cfg.FingerprintThreshold)
}

func TestConfigPatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		patch   ConfigPatch
		wantErr error
	}{
		{name: "empty patch", patch: ConfigPatch{}},
		{name: "valid thresholds", patch: ConfigPatch{DuplicateThreshold: ptr(0.0), FingerprintThreshold: ptr(100.0)}},
		{
			name:    "duplicate threshold above range",
			patch:   ConfigPatch{DuplicateThreshold: ptr(100.5)},
			wantErr: ErrInvalidDuplicateThreshold,
		},
		{
			name:    "fingerprint threshold below range",
			patch:   ConfigPatch{FingerprintThreshold: ptr(-1.0)},
			wantErr: ErrInvalidFingerprintThreshold,
		},
		{name: "zero max documents", patch: ConfigPatch{MaxDocuments: ptr(0)}, wantErr: apperrors.ErrInvalidInput},
		{name: "negative max tokens", patch: ConfigPatch{MaxTokens: ptr(-3)}, wantErr: apperrors.ErrInvalidInput},
		{name: "fingerprint size one", patch: ConfigPatch{FingerprintSize: ptr(1)}, wantErr: apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigPatch_Apply(t *testing.T) {
	base := DefaultConfig()

	patched := (&ConfigPatch{
		MaxDocuments:      ptr(10),
		CheckAllDocuments: ptr(true),
	}).Apply(base)

	assert.Equal(t, 10, patched.MaxDocuments)
	assert.True(t, patched.CheckAllDocuments)
	assert.Equal(t, base.MaxTokens, patched.MaxTokens)
	assert.Equal(t, base.DuplicateThreshold, patched.DuplicateThreshold)
	assert.Equal(t, 1000, base.MaxDocuments)
}
