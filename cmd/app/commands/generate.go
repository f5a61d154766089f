package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
	panUseCase "github.com/allisson/pangen/internal/pan/usecase"
)

// errHistoryDisabled is returned by --persist when generation history is off.
var errHistoryDisabled = errors.New("generation history is disabled, set HISTORY_ENABLED=true")

// RunGenerate writes every valid PAN of template.
func RunGenerate(
	ctx context.Context,
	generator panUseCase.GeneratorUseCase,
	logger *slog.Logger,
	out Output,
	template string,
) error {
	if err := out.validate(); err != nil {
		return err
	}

	pans, err := generator.Generate(ctx, template)
	if err != nil {
		return fmt.Errorf("failed to generate PANs: %w", err)
	}

	logger.Info("generation completed", slog.String("template", template), slog.Int("count", len(pans)))
	return out.pans(ctx, template, pans)
}

// RunBatch writes at most count valid PANs of template.
func RunBatch(
	ctx context.Context,
	generator panUseCase.GeneratorUseCase,
	logger *slog.Logger,
	out Output,
	template string,
	count, maxAttempts int,
) error {
	if err := out.validate(); err != nil {
		return err
	}

	pans, err := generator.GenerateBatch(ctx, template, count, maxAttempts)
	if err != nil {
		return fmt.Errorf("failed to generate PAN batch: %w", err)
	}

	logger.Info("batch generation completed",
		slog.String("template", template),
		slog.Int("requested", count),
		slog.Int("count", len(pans)),
	)
	return out.pans(ctx, template, pans)
}

// RunMulti writes count PANs for each prefix padded to the standard length.
func RunMulti(
	ctx context.Context,
	generator panUseCase.GeneratorUseCase,
	logger *slog.Logger,
	out Output,
	prefixes []string,
	count int,
) error {
	if err := out.validate(); err != nil {
		return err
	}
	if len(prefixes) == 0 {
		return errors.New("at least one --prefix is required")
	}

	result, err := generator.GenerateMulti(ctx, prefixes, count)
	if err != nil {
		return fmt.Errorf("failed to generate PANs for prefixes: %w", err)
	}

	logger.Info("multi generation completed", slog.Int("prefixes", len(result)))
	return out.batch(ctx, result, false)
}

// RunMetadata writes count PANs of template with synthetic card data. When persist is
// set the batch is stored through history, which may be nil when history is disabled.
func RunMetadata(
	ctx context.Context,
	generator panUseCase.GeneratorUseCase,
	history panUseCase.HistoryUseCase,
	logger *slog.Logger,
	out Output,
	template string,
	count int,
	persist bool,
) error {
	if err := out.validate(); err != nil {
		return err
	}
	if persist && history == nil {
		return errHistoryDisabled
	}

	records, err := generator.GenerateWithMetadata(ctx, template, count)
	if err != nil {
		return fmt.Errorf("failed to generate PANs with metadata: %w", err)
	}

	var batchID *uuid.UUID
	if persist && len(records) > 0 {
		id, err := history.Save(ctx, template, records)
		if err != nil {
			return fmt.Errorf("failed to persist generation batch: %w", err)
		}
		batchID = &id
		logger.Info("generation batch persisted", slog.String("batch_id", id.String()))
	}

	return out.metadata(ctx, records, batchID)
}

// RunParallel generates count PANs for each template on the worker pool. A positive
// timeout bounds the run; templates unfinished at the deadline are left out.
func RunParallel(
	ctx context.Context,
	orchestrator panUseCase.OrchestratorUseCase,
	logger *slog.Logger,
	out Output,
	templates []string,
	count int,
	timeout time.Duration,
) error {
	if err := out.validate(); err != nil {
		return err
	}
	if len(templates) == 0 {
		return errors.New("at least one --template is required")
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := orchestrator.GenerateForTemplates(runCtx, templates, count)
	partial := false
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return fmt.Errorf("failed to generate PANs in parallel: %w", err)
		}
		partial = true
		logger.Warn("parallel generation deadline exceeded",
			slog.Int("templates", len(templates)),
			slog.Int("completed", len(result)),
		)
	}
	if result == nil {
		result = panDomain.BatchResult{}
	}

	return out.batch(ctx, result, partial)
}
