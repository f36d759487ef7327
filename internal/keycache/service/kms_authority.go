package service

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"gocloud.dev/gcerrors"
	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// DerivedKeySize is the length of keys returned by KMSAuthority.
const DerivedKeySize = 64

// KMSAuthority derives document keys from a root key wrapped by a KMS
// keeper. The root key is unwrapped for every derivation and zeroed after
// use, so each derivation is a remote call.
type KMSAuthority struct {
	keeper  cryptoDomain.KMSKeeper
	wrapped string
}

// NewKMSAuthority creates an authority over a base64 wrapped root key.
func NewKMSAuthority(keeper cryptoDomain.KMSKeeper, wrappedRootKey string) *KMSAuthority {
	return &KMSAuthority{keeper: keeper, wrapped: wrappedRootKey}
}

// Derive expands the root key with HKDF-SHA256, salted with the key id and
// using the length-prefixed path as info.
func (a *KMSAuthority) Derive(ctx context.Context, req keycacheDomain.DerivationRequest) ([]byte, error) {
	rootKey, err := cryptoService.UnwrapRootKey(ctx, a.keeper, a.wrapped)
	if err != nil {
		return nil, classifyKMSError(err)
	}
	defer cryptoDomain.Zero(rootKey)

	reader := hkdf.New(sha256.New, rootKey, req.KeyID, encodePath(req.Path))
	key := make([]byte, DerivedKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, &keycacheDomain.AuthorityError{
			Code:    keycacheDomain.CodeInternal,
			Message: fmt.Sprintf("key derivation failed: %v", err),
		}
	}
	return key, nil
}

// Check unwraps the root key once.
func (a *KMSAuthority) Check(ctx context.Context) error {
	rootKey, err := cryptoService.UnwrapRootKey(ctx, a.keeper, a.wrapped)
	if err != nil {
		return classifyKMSError(err)
	}
	cryptoDomain.Zero(rootKey)
	return nil
}

// classifyKMSError maps transient KMS failures to the "not available" wording
// that allows fallback keys. Everything else is reported as a failed derivation.
func classifyKMSError(err error) error {
	code := gcerrors.Code(err)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		code = gcerrors.DeadlineExceeded
	}

	switch code {
	case gcerrors.DeadlineExceeded, gcerrors.ResourceExhausted, gcerrors.Canceled, gcerrors.Unimplemented:
		return &keycacheDomain.AuthorityError{
			Code:    keycacheDomain.CodeUnavailable,
			Message: fmt.Sprintf("key derivation authority not available: %v", err),
		}
	case gcerrors.PermissionDenied, gcerrors.NotFound, gcerrors.InvalidArgument, gcerrors.FailedPrecondition:
		return &keycacheDomain.AuthorityError{
			Code:    keycacheDomain.CodeRejected,
			Message: fmt.Sprintf("key derivation rejected: %v", err),
		}
	default:
		return &keycacheDomain.AuthorityError{
			Code:    keycacheDomain.CodeInternal,
			Message: fmt.Sprintf("key derivation failed: %v", err),
		}
	}
}

func encodePath(path [][]byte) []byte {
	var out []byte
	for _, segment := range path {
		out = binary.BigEndian.AppendUint32(out, uint32(len(segment)))
		out = append(out, segment...)
	}
	return out
}

// UnavailableAuthority is used when no KMS key is configured. Every call
// fails as unavailable, so fallback keys are used when enabled.
type UnavailableAuthority struct{}

// NewUnavailableAuthority creates an authority that is never available.
func NewUnavailableAuthority() *UnavailableAuthority {
	return &UnavailableAuthority{}
}

func (UnavailableAuthority) Derive(ctx context.Context, req keycacheDomain.DerivationRequest) ([]byte, error) {
	return nil, keycacheDomain.ErrAuthorityNotConfigured
}

func (UnavailableAuthority) Check(ctx context.Context) error {
	return keycacheDomain.ErrAuthorityNotConfigured
}
