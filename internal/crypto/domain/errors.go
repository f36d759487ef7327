package domain

import (
	"github.com/allisson/docsim/internal/errors"
)

// Homomorphic primitive error definitions.
var (
	// ErrMessageTooLarge indicates a message, read as a big-endian integer, is not below n.
	ErrMessageTooLarge = errors.Wrap(errors.ErrInvalidInput, "message too large for key")

	// ErrKeyGenerationFailed indicates the randomness source could not produce a usable modulus.
	ErrKeyGenerationFailed = errors.New("key generation failed")

	// ErrAlreadyInitialized indicates the process keypair was already created.
	ErrAlreadyInitialized = errors.Wrap(errors.ErrConflict, "Already initialized")

	// ErrNotInitialized indicates no keypair has been created yet.
	ErrNotInitialized = errors.Wrap(errors.ErrNotInitialized, "Paillier not initialized")

	// ErrEmptyIdentity indicates the randomness hook was asked to mix in an empty caller identity.
	ErrEmptyIdentity = errors.Wrap(errors.ErrInvalidInput, "caller identity is empty")

	// ErrInvalidCiphertext indicates a ciphertext is empty.
	ErrInvalidCiphertext = errors.Wrap(errors.ErrInvalidInput, "invalid ciphertext")
)
