package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() { assert.NoError(t, keeper.Close()) }()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok)
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}

func TestKMSService_RootKeyRoundTrip(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, keeper.Close()) }()

	wrapped, err := kmsService.NewWrappedRootKey(ctx, keeper)
	require.NoError(t, err)
	assert.NotEmpty(t, wrapped)

	rootKey, err := UnwrapRootKey(ctx, keeper, wrapped)
	require.NoError(t, err)
	assert.Len(t, rootKey, RootKeySize)

	again, err := UnwrapRootKey(ctx, keeper, wrapped)
	require.NoError(t, err)
	assert.Equal(t, rootKey, again)
}

func TestUnwrapRootKey_Errors(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	keeper1, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, keeper1.Close()) }()

	keeper2, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() { assert.NoError(t, keeper2.Close()) }()

	t.Run("invalid base64", func(t *testing.T) {
		_, err := UnwrapRootKey(ctx, keeper1, "not base64!!")
		assert.ErrorContains(t, err, "failed to decode wrapped root key")
	})

	t.Run("wrong keeper", func(t *testing.T) {
		wrapped, err := kmsService.NewWrappedRootKey(ctx, keeper1)
		require.NoError(t, err)

		_, err = UnwrapRootKey(ctx, keeper2, wrapped)
		assert.ErrorContains(t, err, "failed to unwrap root key")
	})

	t.Run("wrong length", func(t *testing.T) {
		ciphertext, err := keeper1.Encrypt(ctx, []byte("short"))
		require.NoError(t, err)

		_, err = UnwrapRootKey(ctx, keeper1, base64.StdEncoding.EncodeToString(ciphertext))
		assert.ErrorContains(t, err, "want 32")
	})
}
