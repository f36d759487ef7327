package domain

import (
	"github.com/allisson/docsim/internal/errors"
)

// Key cache error definitions.
var (
	// ErrAuthorityNotConfigured is returned by the authority used when no KMS key is configured.
	ErrAuthorityNotConfigured = &AuthorityError{
		Code:    CodeUnavailable,
		Message: "key derivation authority not available: no KMS key configured",
	}

	// ErrEmptyDocumentID rejects derivations without a document id.
	ErrEmptyDocumentID = errors.Wrap(errors.ErrInvalidInput, "document id is required")

	// ErrTooManyDocuments rejects batches larger than the cache capacity.
	ErrTooManyDocuments = errors.Wrap(errors.ErrInvalidInput, "too many document ids in batch")
)
