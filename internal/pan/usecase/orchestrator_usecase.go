package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// orchestratorUseCase runs per-template generation tasks on a bounded errgroup.
type orchestratorUseCase struct {
	generator   GeneratorUseCase
	poolSize    int
	maxAttempts int
	logger      *slog.Logger
}

// NewOrchestratorUseCase creates an OrchestratorUseCase. A poolSize of zero or less
// uses runtime.NumCPU() workers.
func NewOrchestratorUseCase(
	generator GeneratorUseCase,
	poolSize int,
	maxAttempts int,
	logger *slog.Logger,
) OrchestratorUseCase {
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}
	return &orchestratorUseCase{
		generator:   generator,
		poolSize:    poolSize,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// GenerateForTemplates runs GenerateBatch once per distinct template.
func (o *orchestratorUseCase) GenerateForTemplates(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	unique := make([]string, 0, len(templates))
	seen := make(map[string]struct{}, len(templates))
	for _, t := range templates {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	result := make(panDomain.BatchResult, len(unique))
	var mu sync.Mutex

	var group errgroup.Group
	group.SetLimit(o.poolSize)

	for _, template := range unique {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			pans, ok := o.runTask(ctx, template, count)
			if !ok {
				return nil
			}
			mu.Lock()
			result[template] = pans
			mu.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return result, ctx.Err()
}

// runTask executes one isolated generation task. It reports false when the task
// was cancelled before completing, so the template stays absent from the result.
func (o *orchestratorUseCase) runTask(
	ctx context.Context,
	template string,
	count int,
) (pans []panDomain.ValidatedPAN, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("template generation panicked",
				slog.String("template", template),
				slog.Any("error", fmt.Errorf("panic: %v", r)),
			)
			pans, ok = []panDomain.ValidatedPAN{}, true
		}
	}()

	if ctx.Err() != nil {
		return nil, false
	}

	pans, err := o.generator.GenerateBatch(ctx, template, count, o.maxAttempts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}
		o.logger.Error("template generation failed",
			slog.String("template", template),
			slog.Any("error", err),
		)
		return []panDomain.ValidatedPAN{}, true
	}
	return pans, true
}
