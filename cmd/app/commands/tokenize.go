package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/allisson/docsim/internal/tokenizer"
)

// tokenizeOutput is the JSON form of a tokenized text. Tokens are base64.
type tokenizeOutput struct {
	Count  int      `json:"count"`
	Words  []string `json:"words"`
	Tokens [][]byte `json:"tokens"`
}

// RunTokenize splits text into words and prints the 32-byte token of each.
// Text is read from reader when empty.
func RunTokenize(reader io.Reader, writer io.Writer, text string, format string) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	input, err := readText(reader, text)
	if err != nil {
		return err
	}

	words := tokenizer.Words(input)
	tokens := make([][]byte, len(words))
	for i, word := range words {
		tokens[i] = tokenizer.Token(word)
	}

	if format == "json" {
		return writeJSON(writer, tokenizeOutput{
			Count:  len(words),
			Words:  words,
			Tokens: tokens,
		})
	}

	for i, word := range words {
		if _, err := fmt.Fprintf(writer, "%d\t%s\t%s\n", i, word, hex.EncodeToString(tokens[i])); err != nil {
			return err
		}
	}
	return nil
}
