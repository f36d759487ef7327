package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentID(t *testing.T) {
	tokens := [][]byte{[]byte("alpha"), []byte("beta")}

	sum := sha256.Sum256([]byte("alphabeta"))
	assert.Equal(t, hex.EncodeToString(sum[:16]), ContentID(tokens))
	assert.Len(t, ContentID(tokens), 32)
	assert.Equal(t, ContentID(tokens), ContentID([][]byte{[]byte("alpha"), []byte("beta")}))
	assert.NotEqual(t, ContentID(tokens), ContentID([][]byte{[]byte("beta"), []byte("alpha")}))
}

func TestEncryptedDocument_Metadata(t *testing.T) {
	title := "Thesis"

	t.Run("with title", func(t *testing.T) {
		doc := &EncryptedDocument{
			ID:        "doc-1",
			Owner:     "alice",
			Title:     &title,
			Tokens:    [][]byte{{1}, {2}},
			Timestamp: 42,
		}
		assert.Equal(t, DocumentMetadata{
			ID:         "doc-1",
			Title:      "Thesis",
			TokenCount: 2,
			Timestamp:  42,
			Owner:      "alice",
		}, doc.Metadata())
	})

	t.Run("without title", func(t *testing.T) {
		doc := &EncryptedDocument{ID: "doc-2"}
		assert.Equal(t, DefaultTitle, doc.DisplayTitle())
	})
}
