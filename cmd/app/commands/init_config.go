package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	documentDomain "github.com/allisson/docsim/internal/document/domain"
	"github.com/allisson/docsim/internal/document/http/dto"
	documentUsecase "github.com/allisson/docsim/internal/document/usecase"
)

// RunInitConfig saves the current store configuration, writing the configured
// defaults when no row exists yet, and prints it.
func RunInitConfig(
	ctx context.Context,
	configUseCase documentUsecase.ConfigUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	cfg, err := configUseCase.Update(ctx, &documentDomain.ConfigPatch{})
	if err != nil {
		return fmt.Errorf("failed to save store configuration: %w", err)
	}

	logger.Info("store configuration saved",
		slog.Int("max_documents", cfg.MaxDocuments),
		slog.Int("max_tokens", cfg.MaxTokens),
	)

	if format == "json" {
		return writeJSON(writer, dto.MapConfigToResponse(*cfg))
	}

	_, _ = fmt.Fprintf(writer, "MAX_DOCUMENTS=%d\n", cfg.MaxDocuments)
	_, _ = fmt.Fprintf(writer, "MAX_TOKENS=%d\n", cfg.MaxTokens)
	_, _ = fmt.Fprintf(writer, "DUPLICATE_THRESHOLD=%.1f\n", cfg.DuplicateThreshold)
	_, _ = fmt.Fprintf(writer, "CHECK_ALL_DOCUMENTS=%t\n", cfg.CheckAllDocuments)
	_, _ = fmt.Fprintf(writer, "FINGERPRINT_SIZE=%d\n", cfg.FingerprintSize)
	_, _ = fmt.Fprintf(writer, "FINGERPRINT_THRESHOLD=%.1f\n", cfg.FingerprintThreshold)
	return nil
}
