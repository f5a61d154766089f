package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	binUseCase "github.com/allisson/pangen/internal/bin/usecase"
)

// RunImportBINs loads a BIN CSV file into the reference store in one transaction.
func RunImportBINs(
	ctx context.Context,
	useCase binUseCase.BINUseCase,
	logger *slog.Logger,
	writer io.Writer,
	path string,
	format string,
) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open BIN file: %w", err)
	}
	defer func() { _ = file.Close() }()

	imported, err := useCase.Import(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to import BIN file: %w", err)
	}

	logger.Info("bins imported", slog.String("file", path), slog.Int("rows", imported))

	if format == FormatJSON {
		return writeJSON(writer, map[string]any{"file": path, "imported": imported})
	}
	_, err = fmt.Fprintf(writer, "Imported %d BIN record(s) from %s\n", imported, path)
	return err
}
