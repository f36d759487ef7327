package domain

import (
	"fmt"

	"github.com/allisson/docsim/internal/errors"
)

// Document store error definitions.
var (
	// ErrDocumentNotFound indicates no document exists with the requested id.
	ErrDocumentNotFound = errors.Wrap(errors.ErrNotFound, "document not found")

	// ErrDocumentExists indicates an insert collided with an existing id.
	ErrDocumentExists = errors.Wrap(errors.ErrConflict, "document already exists")

	// ErrStoreFull indicates the store already holds the configured maximum of documents.
	ErrStoreFull = errors.Wrap(errors.ErrCapacityExceeded, "Maximum document limit reached")

	// ErrTooManyTokens indicates a document has more tokens than allowed.
	ErrTooManyTokens = errors.Wrap(errors.ErrInvalidInput, "too many tokens")

	// ErrEmptyDocument indicates a document without tokens.
	ErrEmptyDocument = errors.Wrap(errors.ErrInvalidInput, "document has no tokens")

	// ErrInvalidTokenSize indicates a token whose length differs from the required size.
	ErrInvalidTokenSize = errors.Wrap(errors.ErrInvalidInput, "invalid token size")

	// ErrInvalidDuplicateThreshold rejects a duplicate threshold outside [0, 100].
	ErrInvalidDuplicateThreshold = errors.Wrap(
		errors.ErrInvalidInput,
		"Duplicate threshold must be between 0 and 100",
	)

	// ErrInvalidFingerprintThreshold rejects a fingerprint threshold outside [0, 100].
	ErrInvalidFingerprintThreshold = errors.Wrap(
		errors.ErrInvalidInput,
		"Fingerprint threshold must be between 0 and 100",
	)

	// ErrNotOwner indicates a non-owner attempted an owner-only operation.
	ErrNotOwner = errors.Wrap(errors.ErrForbidden, "Unauthorized: only owner can clear documents")

	// ErrCorruptedTokens indicates a persisted token blob could not be decoded.
	ErrCorruptedTokens = errors.Wrap(errors.ErrCorrupted, "stored tokens are unreadable")
)

// ErrInvalidDocumentID indicates a caller-supplied id failed validation.
var ErrInvalidDocumentID = errors.Wrap(errors.ErrInvalidInput, "invalid document id")

// Rejection is a validation or capacity failure that callers report back as a
// structured result. Error returns the caller-facing message; Unwrap returns
// the classifying sentinel.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Reason
}

// Reject builds a Rejection with a formatted message.
func Reject(reason error, format string, args ...any) error {
	return &Rejection{Reason: reason, Message: fmt.Sprintf(format, args...)}
}
