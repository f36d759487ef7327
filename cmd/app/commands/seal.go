package commands

import (
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
	cryptoService "github.com/allisson/docsim/internal/crypto/service"
	"github.com/allisson/docsim/internal/document/http/dto"
	"github.com/allisson/docsim/internal/tokenizer"
)

// RunSeal tokenizes text and encrypts every token deterministically under the
// public key with modulus publicKeyN (decimal). The output is a JSON body
// accepted by POST /v1/documents. Text is read from reader when empty.
func RunSeal(reader io.Reader, writer io.Writer, text string, publicKeyN string, title string) error {
	keyPair, ok := cryptoDomain.ParsePublicKey(cryptoDomain.PublicKey{N: publicKeyN})
	if !ok {
		return fmt.Errorf("invalid public key modulus: %q", publicKeyN)
	}

	input, err := readText(reader, text)
	if err != nil {
		return err
	}

	tokens := tokenizer.Tokenize(input)
	if len(tokens) == 0 {
		return fmt.Errorf("no words to seal")
	}

	sealed := make([][]byte, len(tokens))
	for i, token := range tokens {
		sealed[i], err = cryptoService.EncryptDeterministic(keyPair, token)
		if err != nil {
			return fmt.Errorf("failed to seal token %d: %w", i, err)
		}
	}

	publicKey := keyPair.Public()
	request := dto.StoreDocumentRequest{
		Tokens:    sealed,
		PublicKey: &publicKey,
	}
	if title != "" {
		request.Title = &title
	}

	return writeJSON(writer, request)
}
