package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/docsim/internal/errors"
)

func TestTokenCodec(t *testing.T) {
	tokens := [][]byte{{0x01, 0x02}, {}, make([]byte, 300)}

	decoded, err := DecodeTokens(EncodeTokens(tokens))
	require.NoError(t, err)
	assert.Equal(t, tokens, decoded)

	empty, err := DecodeTokens(EncodeTokens(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeTokens_Corrupted(t *testing.T) {
	valid := EncodeTokens([][]byte{{0xaa, 0xbb, 0xcc}})

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "unknown version", data: []byte{9, 0}},
		{name: "missing count", data: []byte{tokenCodecVersion}},
		{name: "count exceeds payload", data: []byte{tokenCodecVersion, 5}},
		{name: "truncated token", data: valid[:len(valid)-1]},
		{name: "trailing bytes", data: append(append([]byte{}, valid...), 0xff)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTokens(tt.data)
			assert.ErrorIs(t, err, ErrCorruptedTokens)
			assert.True(t, apperrors.Is(err, apperrors.ErrCorrupted))
		})
	}
}
