package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/pangen/internal/pan/http/dto"
	panUseCase "github.com/allisson/pangen/internal/pan/usecase"
)

// RunValidate checks a single PAN and prints the verdict in text or JSON.
func RunValidate(
	ctx context.Context,
	generator panUseCase.GeneratorUseCase,
	logger *slog.Logger,
	writer io.Writer,
	pan string,
	format string,
) error {
	result, err := generator.Validate(ctx, pan)
	if err != nil {
		return fmt.Errorf("failed to validate PAN: %w", err)
	}

	logger.Debug("pan validated", slog.Bool("valid", result.Valid), slog.Bool("in_range", result.InRange))

	if format == FormatJSON {
		return writeJSON(writer, dto.MapValidationResultToResponse(result))
	}

	verdict := "invalid"
	if result.Valid {
		verdict = "valid"
	}
	_, err = fmt.Fprintf(writer,
		"PAN %s is %s\nBrand: %s\nBIN: %s\nLast four: %s\nIn issuer range: %t\n",
		result.PAN, verdict, result.Brand, result.BIN, result.LastFour, result.InRange,
	)
	return err
}
