// Package dto provides data transfer objects for the document and
// administration endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	documentDomain "github.com/allisson/docsim/internal/document/domain"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// StoreDocumentRequest stores client-encrypted tokens. Tokens are base64 in JSON.
type StoreDocumentRequest struct {
	Title     *string                 `json:"title"`
	Tokens    [][]byte                `json:"tokens"`
	PublicKey *cryptoDomain.PublicKey `json:"public_key"`
}

// Validate checks the request.
func (r *StoreDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, customValidation.NotBlank),
		validation.Field(&r.Tokens, validation.Required, validation.Each(validation.Required)),
	)
}

// EncryptDocumentRequest submits raw tokens for server-side encryption.
// The document id comes from the URL.
type EncryptDocumentRequest struct {
	Title  *string  `json:"title"`
	Tokens [][]byte `json:"tokens"`
}

// Validate checks the request. Token count and size limits are enforced by the
// use case so the caller gets the same messages as other entry points.
func (r *EncryptDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, customValidation.NotBlank),
		validation.Field(&r.Tokens, validation.Required),
	)
}

// UpdateConfigRequest patches the store configuration. Omitted fields are unchanged.
type UpdateConfigRequest struct {
	MaxDocuments         *int     `json:"max_documents"`
	MaxTokens            *int     `json:"max_tokens"`
	DuplicateThreshold   *float64 `json:"duplicate_threshold"`
	CheckAllDocuments    *bool    `json:"check_all_documents"`
	FingerprintSize      *int     `json:"fingerprint_size"`
	FingerprintThreshold *float64 `json:"fingerprint_threshold"`
}

// ToPatch converts the request to a domain patch.
func (r *UpdateConfigRequest) ToPatch() *documentDomain.ConfigPatch {
	return &documentDomain.ConfigPatch{
		MaxDocuments:         r.MaxDocuments,
		MaxTokens:            r.MaxTokens,
		DuplicateThreshold:   r.DuplicateThreshold,
		CheckAllDocuments:    r.CheckAllDocuments,
		FingerprintSize:      r.FingerprintSize,
		FingerprintThreshold: r.FingerprintThreshold,
	}
}
