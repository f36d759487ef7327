// Package domain defines the additively homomorphic keypair and the
// key-management abstractions it depends on.
//
// The scheme is a Paillier variant kept as a proof of concept: the primes are
// not tested for primality and the randomness hook is not a secure source.
package domain

import (
	"context"
	"math/big"
)

// KeyPair holds the public parameters of the scheme.
// N = p*q, NSquared = N*N and G = N+1. Values are never mutated after creation.
type KeyPair struct {
	N        *big.Int
	NSquared *big.Int
	G        *big.Int
	Bits     int
}

// NewKeyPair derives the remaining parameters from n.
func NewKeyPair(n *big.Int, bits int) *KeyPair {
	nSquared := new(big.Int).Mul(n, n)
	g := new(big.Int).Add(n, big.NewInt(1))
	return &KeyPair{N: n, NSquared: nSquared, G: g, Bits: bits}
}

// PublicKey is the decimal-string form used in persisted records and responses.
type PublicKey struct {
	N string `json:"n"`
	G string `json:"g"`
}

// Public returns the decimal-string public key.
func (k *KeyPair) Public() PublicKey {
	return PublicKey{N: k.N.String(), G: k.G.String()}
}

// ParsePublicKey rebuilds a keypair from decimal strings.
func ParsePublicKey(pk PublicKey) (*KeyPair, bool) {
	n, ok := new(big.Int).SetString(pk.N, 10)
	if !ok || n.Sign() <= 0 {
		return nil, false
	}
	return NewKeyPair(n, n.BitLen()), true
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap root keys.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// Zero overwrites a byte slice with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EncryptBatchResult is the outcome of a metered batch encryption. When
// Success is false, Ciphertexts holds the Processed tokens encrypted before
// the batch stopped.
type EncryptBatchResult struct {
	Ciphertexts [][]byte
	Success     bool
	Processed   int
	UnitsUsed   uint64
	Error       string
}
