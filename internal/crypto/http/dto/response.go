// Package dto provides data transfer objects for the Paillier endpoints.
package dto

import (
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// PublicKeyResponse carries n and g as decimal strings.
type PublicKeyResponse struct {
	N    string `json:"n"`
	G    string `json:"g"`
	Bits int    `json:"bits"`
}

// MapKeyPairToResponse converts the public part of a keypair.
func MapKeyPairToResponse(kp *cryptoDomain.KeyPair) PublicKeyResponse {
	pk := kp.Public()
	return PublicKeyResponse{N: pk.N, G: pk.G, Bits: kp.Bits}
}

// InitializeResponse reports a successful initialization.
type InitializeResponse struct {
	Message   string            `json:"message"`
	PublicKey PublicKeyResponse `json:"public_key"`
}
