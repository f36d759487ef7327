// Package dto provides data transfer objects for the similarity endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/docsim/internal/validation"
)

// CheckRequest compares submitted tokens with a stored document. Tokens are base64.
type CheckRequest struct {
	DocumentID string   `json:"document_id"`
	Tokens     [][]byte `json:"tokens"`
	Mode       string   `json:"mode"`
}

// Validate checks the request.
func (r *CheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DocumentID, validation.Required),
		validation.Field(&r.Tokens, validation.Required),
		validation.Field(&r.Mode, validation.In("", "duplicate", "plagiarism", "both")),
	)
}

// PairRequest names two stored documents.
type PairRequest struct {
	DocumentID1 string `json:"document_id_1"`
	DocumentID2 string `json:"document_id_2"`
}

// Validate checks both ids.
func (r *PairRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DocumentID1, validation.Required, customValidation.NoWhitespace),
		validation.Field(&r.DocumentID2, validation.Required, customValidation.NoWhitespace),
	)
}
