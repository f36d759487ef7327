package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/docsim/internal/crypto/service"
)

// RunCreateAuthorityKey generates a random 32-byte root key for the
// key-derivation authority and prints it wrapped by the KMS key at kmsKeyURI.
// The plaintext root key never leaves the process.
//
// Output format:
//   - AUTHORITY_KMS_KEY_URI="<uri>"
//   - AUTHORITY_WRAPPED_ROOT_KEY="<base64-kms-ciphertext>"
//   - AUTHORITY_KEY_ID="<keyID>"
//
// Use base64key:// URIs for local development only.
func RunCreateAuthorityKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	keyID string,
	kmsKeyURI string,
) error {
	if kmsKeyURI == "" {
		return fmt.Errorf(
			"--kms-key-uri is required\n\nFor local development, use:\n  --kms-key-uri=\"base64key://<32-byte-base64-key>\"\n\nFor production, use a cloud KMS:\n  --kms-key-uri=\"gcpkms://projects/.../cryptoKeys/...\"\n  --kms-key-uri=\"awskms:///alias/...\"\n  --kms-key-uri=\"azurekeyvault://...\"\n  --kms-key-uri=\"hashivault://...\"",
		)
	}
	if keyID == "" {
		keyID = "document-root"
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	wrapped, err := kmsService.NewWrappedRootKey(ctx, keeper)
	if err != nil {
		return fmt.Errorf("failed to create authority root key: %w", err)
	}

	logger.Info("authority root key created", slog.String("key_id", keyID))

	_, _ = fmt.Fprintln(writer, "# Key-derivation authority configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "AUTHORITY_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "AUTHORITY_WRAPPED_ROOT_KEY=\"%s\"\n", wrapped)
	_, _ = fmt.Fprintf(writer, "AUTHORITY_KEY_ID=\"%s\"\n", keyID)

	return nil
}
