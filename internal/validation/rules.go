// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/docsim/internal/errors"
)

// MaxDocumentIDLength is the longest caller-supplied document id accepted.
const MaxDocumentIDLength = 64

var documentIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// DocumentID validates a caller-supplied document id: 1 to 64 characters
// drawn from letters, digits, underscore and hyphen.
var DocumentID = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_document_id_type", "must be a string")
	}
	if s == "" {
		return validation.NewError("validation_document_id_empty", "Document ID cannot be empty")
	}
	if len(s) > MaxDocumentIDLength {
		return validation.NewError("validation_document_id_length", "Document ID too long (max 64 characters)")
	}
	if !documentIDRegex.MatchString(s) {
		return validation.NewError(
			"validation_document_id_chars",
			"Document ID can only contain alphanumeric characters, underscores, and hyphens",
		)
	}
	return nil
})

// Percentage validates that a float64 (or non-nil *float64) lies in [0, 100].
var Percentage = validation.By(func(value interface{}) error {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case *float64:
		if v == nil {
			return nil
		}
		f = *v
	default:
		return validation.NewError("validation_percentage_type", "must be a number")
	}
	if f < 0 || f > 100 {
		return validation.NewError("validation_percentage_range", "must be between 0 and 100")
	}
	return nil
})
