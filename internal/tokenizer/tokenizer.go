// Package tokenizer turns text into fixed-size word tokens.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/blake2b"
)

// TokenSize is the length in bytes of every token.
const TokenSize = blake2b.Size256

// Words lowercases text and splits it on every rune that is neither a letter nor a digit.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Token hashes one word.
func Token(word string) []byte {
	sum := blake2b.Sum256([]byte(word))
	return sum[:]
}

// Tokenize returns one token per word, in order. Equal words yield equal tokens.
func Tokenize(text string) [][]byte {
	words := Words(text)
	out := make([][]byte, len(words))
	for i, w := range words {
		out[i] = Token(w)
	}
	return out
}
