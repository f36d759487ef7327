// Package service implements the additively homomorphic primitive, its
// randomness hook and the KMS keeper factory.
package service

import (
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// Primitive defines keypair generation, encryption and homomorphic combination.
type Primitive interface {
	// Generate creates a keypair whose modulus is the product of two random bits/2 integers.
	Generate(bits int) (*cryptoDomain.KeyPair, error)

	// Encrypt returns g^m * r^n mod n^2 for the big-endian message m and a random r in [1, n).
	Encrypt(kp *cryptoDomain.KeyPair, message []byte) ([]byte, error)

	// Combine returns c1*c2 mod n^2, the ciphertext of the sum of both plaintexts.
	Combine(kp *cryptoDomain.KeyPair, c1, c2 []byte) []byte
}
