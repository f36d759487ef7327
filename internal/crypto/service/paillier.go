package service

import (
	"fmt"
	"io"
	"math/big"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

var (
	one = big.NewInt(1)

	deterministicMultiplier = big.NewInt(31415926535)
	deterministicOffset     = big.NewInt(2718281828)
)

// Paillier implements Primitive over an injected randomness source.
// It performs no primality testing and no parameter validation.
type Paillier struct {
	rand io.Reader
}

// NewPaillier creates a primitive that draws nonces and factors from rand.
func NewPaillier(rand io.Reader) *Paillier {
	return &Paillier{rand: rand}
}

// Generate creates a keypair with n = p*q where p and q are random bits/2 integers.
func (p *Paillier) Generate(bits int) (*cryptoDomain.KeyPair, error) {
	if bits < 4 {
		return nil, fmt.Errorf("%w: bit length %d too small", cryptoDomain.ErrKeyGenerationFailed, bits)
	}

	factorP, err := p.randomBits(bits / 2)
	if err != nil {
		return nil, err
	}
	factorQ, err := p.randomBits(bits / 2)
	if err != nil {
		return nil, err
	}

	n := new(big.Int).Mul(factorP, factorQ)
	if n.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: degenerate modulus", cryptoDomain.ErrKeyGenerationFailed)
	}

	return cryptoDomain.NewKeyPair(n, bits), nil
}

// Encrypt encrypts a big-endian message with a fresh random nonce.
func (p *Paillier) Encrypt(kp *cryptoDomain.KeyPair, message []byte) ([]byte, error) {
	m := new(big.Int).SetBytes(message)
	if m.Cmp(kp.N) >= 0 {
		return nil, cryptoDomain.ErrMessageTooLarge
	}

	r, err := p.randomBelow(kp.N)
	if err != nil {
		return nil, err
	}

	return encryptWith(kp, m, r).Bytes(), nil
}

// Combine multiplies two ciphertexts modulo n^2.
func (p *Paillier) Combine(kp *cryptoDomain.KeyPair, c1, c2 []byte) []byte {
	return Combine(kp, c1, c2)
}

// Combine multiplies two ciphertexts modulo n^2.
func Combine(kp *cryptoDomain.KeyPair, c1, c2 []byte) []byte {
	a := new(big.Int).SetBytes(c1)
	b := new(big.Int).SetBytes(c2)
	product := new(big.Int).Mul(a, b)
	return product.Mod(product, kp.NSquared).Bytes()
}

// EncryptDeterministic encrypts with a nonce derived from the message so equal
// plaintexts produce equal ciphertexts. It is used by clients sealing tokens
// for positional and n-gram comparison over opaque bytes.
func EncryptDeterministic(kp *cryptoDomain.KeyPair, message []byte) ([]byte, error) {
	m := new(big.Int).SetBytes(message)
	if m.Cmp(kp.N) >= 0 {
		return nil, cryptoDomain.ErrMessageTooLarge
	}

	r := new(big.Int).Mul(m, deterministicMultiplier)
	r.Add(r, deterministicOffset)
	r.Mod(r, kp.N)
	if r.Bit(0) == 0 {
		r.Add(r, one)
	}

	return encryptWith(kp, m, r).Bytes(), nil
}

func encryptWith(kp *cryptoDomain.KeyPair, m, r *big.Int) *big.Int {
	gm := new(big.Int).Exp(kp.G, m, kp.NSquared)
	rn := new(big.Int).Exp(r, kp.N, kp.NSquared)
	c := gm.Mul(gm, rn)
	return c.Mod(c, kp.NSquared)
}

// randomBits reads an integer of at most bits bits.
func (p *Paillier) randomBits(bits int) (*big.Int, error) {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(p.rand, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyGenerationFailed, err)
	}
	if extra := len(buf)*8 - bits; extra > 0 {
		buf[0] &= byte(0xff >> extra)
	}
	return new(big.Int).SetBytes(buf), nil
}

// randomBelow returns a value in [1, n) by reducing wide random bytes.
func (p *Paillier) randomBelow(n *big.Int) (*big.Int, error) {
	buf := make([]byte, (n.BitLen()+7)/8+8)
	if _, err := io.ReadFull(p.rand, buf); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}
	span := new(big.Int).Sub(n, one)
	if span.Sign() <= 0 {
		return new(big.Int).Set(one), nil
	}
	r := new(big.Int).SetBytes(buf)
	r.Mod(r, span)
	return r.Add(r, one), nil
}
