package service

import (
	"crypto/sha256"
	"encoding/binary"

	keycacheDomain "github.com/allisson/docsim/internal/keycache/domain"
)

// FallbackKey synthesizes a degraded-mode key:
//
//	h   = SHA-256("fallback:" || documentID || be64(now) || principal)
//	key = h || SHA-256(h || "extended")
//
// It is predictable by anyone who knows the inputs and must only be used
// while the authority is unavailable.
func FallbackKey(documentID string, now uint64, principal string) []byte {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], now)

	h := sha256.New()
	h.Write([]byte("fallback:"))
	h.Write([]byte(documentID))
	h.Write(ts[:])
	h.Write([]byte(principal))
	first := h.Sum(nil)

	h2 := sha256.New()
	h2.Write(first)
	h2.Write([]byte("extended"))

	key := make([]byte, 0, keycacheDomain.FallbackKeySize)
	key = append(key, first...)
	return h2.Sum(key)
}
