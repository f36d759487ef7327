package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/docsim/internal/validation"
)

// Config is the process-wide store configuration.
type Config struct {
	MaxDocuments         int
	MaxTokens            int
	DuplicateThreshold   float64
	CheckAllDocuments    bool
	FingerprintSize      int
	FingerprintThreshold float64
}

// DefaultConfig returns the configuration used before any patch is applied.
func DefaultConfig() Config {
	return Config{
		MaxDocuments:         1000,
		MaxTokens:            10000,
		DuplicateThreshold:   95.0,
		CheckAllDocuments:    false,
		FingerprintSize:      50,
		FingerprintThreshold: 80.0,
	}
}

// ConfigPatch is a partial update; nil fields are left unchanged.
type ConfigPatch struct {
	MaxDocuments         *int
	MaxTokens            *int
	DuplicateThreshold   *float64
	CheckAllDocuments    *bool
	FingerprintSize      *int
	FingerprintThreshold *float64
}

// Validate checks the patch before it is applied.
func (p *ConfigPatch) Validate() error {
	if err := validation.Validate(p.DuplicateThreshold, customValidation.Percentage); err != nil {
		return ErrInvalidDuplicateThreshold
	}
	if err := validation.Validate(p.FingerprintThreshold, customValidation.Percentage); err != nil {
		return ErrInvalidFingerprintThreshold
	}

	err := validation.ValidateStruct(p,
		validation.Field(&p.MaxDocuments, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&p.MaxTokens, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&p.FingerprintSize, validation.NilOrNotEmpty, validation.Min(2)),
	)
	return customValidation.WrapValidationError(err)
}

// Apply returns cfg with the patch applied. It does not validate.
func (p *ConfigPatch) Apply(cfg Config) Config {
	if p.MaxDocuments != nil {
		cfg.MaxDocuments = *p.MaxDocuments
	}
	if p.MaxTokens != nil {
		cfg.MaxTokens = *p.MaxTokens
	}
	if p.DuplicateThreshold != nil {
		cfg.DuplicateThreshold = *p.DuplicateThreshold
	}
	if p.CheckAllDocuments != nil {
		cfg.CheckAllDocuments = *p.CheckAllDocuments
	}
	if p.FingerprintSize != nil {
		cfg.FingerprintSize = *p.FingerprintSize
	}
	if p.FingerprintThreshold != nil {
		cfg.FingerprintThreshold = *p.FingerprintThreshold
	}
	return cfg
}
