// Package dto provides data transfer objects for the key cache endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
	customValidation "github.com/allisson/docsim/internal/validation"
)

// DeriveKeyRequest asks for the key of one document.
type DeriveKeyRequest struct {
	DocumentID string `json:"document_id"`
}

// Validate checks the document id.
func (r *DeriveKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DocumentID, validation.Required, customValidation.DocumentID),
	)
}

// BatchDeriveRequest asks for the keys of several documents.
type BatchDeriveRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

// Validate checks the batch size and every id.
func (r *BatchDeriveRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DocumentIDs,
			validation.Required,
			validation.Length(1, keycacheDomain.MaxBatchSize),
			validation.Each(customValidation.DocumentID),
		),
	)
}
