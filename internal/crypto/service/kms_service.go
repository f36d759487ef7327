package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// RootKeySize is the byte length of an authority root key.
const RootKeySize = 32

// KMSService opens keepers and wraps authority root keys.
type KMSService interface {
	// OpenKeeper opens a keeper for gcpkms://, awskms://, azurekeyvault://, hashivault:// or base64key:// URIs.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)

	// NewWrappedRootKey generates a root key and returns its base64 KMS ciphertext.
	NewWrappedRootKey(ctx context.Context, keeper cryptoDomain.KMSKeeper) (string, error)
}

type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

func (k *kmsService) NewWrappedRootKey(ctx context.Context, keeper cryptoDomain.KMSKeeper) (string, error) {
	rootKey := make([]byte, RootKeySize)
	defer cryptoDomain.Zero(rootKey)

	if _, err := rand.Read(rootKey); err != nil {
		return "", fmt.Errorf("failed to generate root key: %w", err)
	}

	ciphertext, err := keeper.Encrypt(ctx, rootKey)
	if err != nil {
		return "", fmt.Errorf("failed to wrap root key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// UnwrapRootKey decodes and decrypts a wrapped root key. Callers must Zero the result.
func UnwrapRootKey(ctx context.Context, keeper cryptoDomain.KMSKeeper, wrapped string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped root key: %w", err)
	}

	rootKey, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap root key: %w", err)
	}
	if len(rootKey) != RootKeySize {
		cryptoDomain.Zero(rootKey)
		return nil, fmt.Errorf("unwrapped root key has %d bytes, want %d", len(rootKey), RootKeySize)
	}

	return rootKey, nil
}
