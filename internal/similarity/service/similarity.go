// Package service implements the token-level similarity measures. Every
// function treats tokens as opaque byte strings compared for equality.
package service

import (
	"bytes"
	"strings"
)

// Positional counts equal tokens at equal indices over the shorter document
// and scales the match percentage by minLen/maxLen. Two empty inputs score 0.
func Positional(a, b [][]byte) (score float64, compared int) {
	minLen, maxLen := len(a), len(b)
	if minLen > maxLen {
		minLen, maxLen = maxLen, minLen
	}
	if minLen == 0 {
		return 0, 0
	}

	matches := 0
	for i := 0; i < minLen; i++ {
		if bytes.Equal(a[i], b[i]) {
			matches++
		}
	}
	return PositionalScore(matches, minLen, maxLen), minLen
}

// PositionalScore turns a match count into the length-penalized percentage.
func PositionalScore(matches, minLen, maxLen int) float64 {
	if minLen == 0 || maxLen == 0 {
		return 0
	}
	positionScore := float64(matches) / float64(minLen) * 100
	return positionScore * (float64(minLen) / float64(maxLen))
}

// NGram measures containment of check in source using windows of n tokens.
// chunksChecked is len(check)-n+1; a check shorter than n, or an empty
// source, scores 0 with nothing checked.
func NGram(source, check [][]byte, n int) (score float64, matching, chunksChecked int) {
	if n <= 0 || len(source) == 0 || len(check) < n {
		return 0, 0, 0
	}

	windows := make(map[string]struct{}, len(source))
	for i := 0; i+n <= len(source); i++ {
		windows[windowKey(source[i:i+n])] = struct{}{}
	}

	chunksChecked = len(check) - n + 1
	for i := 0; i < chunksChecked; i++ {
		if _, ok := windows[windowKey(check[i:i+n])]; ok {
			matching++
		}
	}

	return float64(matching) / float64(chunksChecked) * 100, matching, chunksChecked
}

// windowKey encodes a window with length prefixes so distinct splits never collide.
func windowKey(window [][]byte) string {
	var sb strings.Builder
	for _, token := range window {
		n := len(token)
		sb.WriteByte(byte(n >> 24))
		sb.WriteByte(byte(n >> 16))
		sb.WriteByte(byte(n >> 8))
		sb.WriteByte(byte(n))
		sb.Write(token)
	}
	return sb.String()
}

// Fingerprint samples up to sampleSize tokens: all tokens when the document is
// small enough, otherwise the first, the last and evenly strided tokens between.
func Fingerprint(tokens [][]byte, sampleSize int) [][]byte {
	if len(tokens) <= sampleSize {
		return tokens
	}
	if sampleSize <= 0 {
		return [][]byte{}
	}

	out := make([][]byte, 0, sampleSize)
	out = append(out, tokens[0])
	if sampleSize > 2 {
		step := len(tokens) / (sampleSize - 1)
		for i := 1; i < sampleSize-1; i++ {
			if idx := i * step; idx < len(tokens) {
				out = append(out, tokens[idx])
			}
		}
	}
	return append(out, tokens[len(tokens)-1])
}

// FingerprintSimilarity is the unpenalized positional match percentage over
// the shorter of two fingerprints.
func FingerprintSimilarity(a, b [][]byte) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	matches := 0
	for i := 0; i < n; i++ {
		if bytes.Equal(a[i], b[i]) {
			matches++
		}
	}
	return float64(matches) / float64(n) * 100
}

// NGramFingerprint samples at most sampleCount windows of n tokens at an even stride.
func NGramFingerprint(tokens [][]byte, n, sampleCount int) [][][]byte {
	if n <= 0 || len(tokens) < n {
		return [][][]byte{}
	}

	total := len(tokens) - n + 1
	step := max(max(total, 1)/max(sampleCount, 1), 1)

	out := make([][][]byte, 0, min(total, max(sampleCount, 0)))
	for i := 0; i < total && len(out) < sampleCount; i += step {
		out = append(out, tokens[i:i+n])
	}
	return out
}
