package domain

import (
	"strings"

	apperrors "github.com/allisson/docsim/internal/errors"
)

// DocumentLabel is the fixed first segment of every document derivation path.
const DocumentLabel = "document"

// DerivationRequest is sent to the key-derivation authority.
type DerivationRequest struct {
	KeyID []byte
	Path  [][]byte

	// PublicKey is reserved for identity-based encryption and is always nil today.
	PublicKey []byte
}

// NewDocumentRequest builds the request for a document key: the path is
// ["document", documentID] under keyID.
func NewDocumentRequest(keyID []byte, documentID string) DerivationRequest {
	return DerivationRequest{
		KeyID: keyID,
		Path:  [][]byte{[]byte(DocumentLabel), []byte(documentID)},
	}
}

// DefaultKeyID is the all-zero key identifier.
func DefaultKeyID() []byte {
	return make([]byte, KeyIDSize)
}

// Authority error codes.
const (
	CodeUnavailable = "unavailable"
	CodeRejected    = "rejected"
	CodeInternal    = "internal"
)

// AuthorityError is a failed derivation. Message is reported verbatim.
type AuthorityError struct {
	Code    string
	Message string
}

func (e *AuthorityError) Error() string {
	return e.Message
}

// Unwrap lets callers match apperrors.ErrAuthority.
func (e *AuthorityError) Unwrap() error {
	return apperrors.ErrAuthority
}

// IndicatesUnavailable reports whether err reads as an unavailable authority.
// Only these failures may be downgraded to a fallback key.
func IndicatesUnavailable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not available")
}
