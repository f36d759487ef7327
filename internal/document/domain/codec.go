package domain

import (
	"encoding/binary"
	"fmt"
)

// tokenCodecVersion prefixes every encoded token blob.
const tokenCodecVersion byte = 1

// EncodeTokens serializes an ordered token list as
// version | uvarint(count) | (uvarint(len) | bytes)*.
func EncodeTokens(tokens [][]byte) []byte {
	size := 1 + binary.MaxVarintLen64
	for _, t := range tokens {
		size += binary.MaxVarintLen64 + len(t)
	}

	buf := make([]byte, 0, size)
	buf = append(buf, tokenCodecVersion)
	buf = binary.AppendUvarint(buf, uint64(len(tokens)))
	for _, t := range tokens {
		buf = binary.AppendUvarint(buf, uint64(len(t)))
		buf = append(buf, t...)
	}
	return buf
}

// DecodeTokens is the inverse of EncodeTokens. Any malformed input yields an
// error wrapping ErrCorruptedTokens.
func DecodeTokens(data []byte) ([][]byte, error) {
	if len(data) == 0 || data[0] != tokenCodecVersion {
		return nil, fmt.Errorf("%w: unknown codec version", ErrCorruptedTokens)
	}
	rest := data[1:]

	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad token count", ErrCorruptedTokens)
	}
	rest = rest[n:]
	if count > uint64(len(rest)) {
		return nil, fmt.Errorf("%w: token count %d exceeds payload", ErrCorruptedTokens, count)
	}

	tokens := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		length, n := binary.Uvarint(rest)
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad length for token %d", ErrCorruptedTokens, i)
		}
		rest = rest[n:]
		if length > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: token %d truncated", ErrCorruptedTokens, i)
		}
		token := make([]byte, length)
		copy(token, rest[:length])
		tokens = append(tokens, token)
		rest = rest[length:]
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptedTokens, len(rest))
	}
	return tokens, nil
}
