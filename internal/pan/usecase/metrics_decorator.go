package usecase

import (
	"context"
	"time"

	"github.com/allisson/pangen/internal/metrics"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

const metricsDomain = "pan"

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// generatorUseCaseWithMetrics decorates GeneratorUseCase with metrics instrumentation.
type generatorUseCaseWithMetrics struct {
	next    GeneratorUseCase
	metrics metrics.BusinessMetrics
}

// NewGeneratorUseCaseWithMetrics wraps a GeneratorUseCase with metrics recording.
func NewGeneratorUseCaseWithMetrics(useCase GeneratorUseCase, m metrics.BusinessMetrics) GeneratorUseCase {
	return &generatorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (g *generatorUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	g.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	g.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

// Validate records metrics for PAN validation.
func (g *generatorUseCaseWithMetrics) Validate(
	ctx context.Context,
	pan string,
) (*panDomain.ValidationResult, error) {
	start := time.Now()
	result, err := g.next.Validate(ctx, pan)
	g.record(ctx, "validate", start, err)
	return result, err
}

// Generate records metrics for exhaustive generation.
func (g *generatorUseCaseWithMetrics) Generate(
	ctx context.Context,
	template string,
) ([]panDomain.ValidatedPAN, error) {
	start := time.Now()
	pans, err := g.next.Generate(ctx, template)
	g.record(ctx, "generate", start, err)
	g.metrics.RecordGenerated(ctx, metricsDomain, "generate", len(pans))
	return pans, err
}

// GenerateBatch records metrics for bounded generation.
func (g *generatorUseCaseWithMetrics) GenerateBatch(
	ctx context.Context,
	template string,
	count, maxAttempts int,
) ([]panDomain.ValidatedPAN, error) {
	start := time.Now()
	pans, err := g.next.GenerateBatch(ctx, template, count, maxAttempts)
	g.record(ctx, "generate_batch", start, err)
	g.metrics.RecordGenerated(ctx, metricsDomain, "generate_batch", len(pans))
	return pans, err
}

// GenerateMulti records metrics for multi-template generation.
func (g *generatorUseCaseWithMetrics) GenerateMulti(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	start := time.Now()
	result, err := g.next.GenerateMulti(ctx, templates, count)
	g.record(ctx, "generate_multi", start, err)
	g.metrics.RecordGenerated(ctx, metricsDomain, "generate_multi", countPANs(result))
	return result, err
}

// GenerateWithMetadata records metrics for metadata enrichment.
func (g *generatorUseCaseWithMetrics) GenerateWithMetadata(
	ctx context.Context,
	template string,
	count int,
) ([]*panDomain.PANMetadata, error) {
	start := time.Now()
	records, err := g.next.GenerateWithMetadata(ctx, template, count)
	g.record(ctx, "generate_with_metadata", start, err)
	g.metrics.RecordGenerated(ctx, metricsDomain, "generate_with_metadata", len(records))
	return records, err
}

// orchestratorUseCaseWithMetrics decorates OrchestratorUseCase with metrics instrumentation.
type orchestratorUseCaseWithMetrics struct {
	next    OrchestratorUseCase
	metrics metrics.BusinessMetrics
}

// NewOrchestratorUseCaseWithMetrics wraps an OrchestratorUseCase with metrics recording.
func NewOrchestratorUseCaseWithMetrics(
	useCase OrchestratorUseCase,
	m metrics.BusinessMetrics,
) OrchestratorUseCase {
	return &orchestratorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GenerateForTemplates records metrics for parallel generation.
func (o *orchestratorUseCaseWithMetrics) GenerateForTemplates(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	start := time.Now()
	result, err := o.next.GenerateForTemplates(ctx, templates, count)

	status := statusOf(err)
	o.metrics.RecordOperation(ctx, metricsDomain, "generate_for_templates", status)
	o.metrics.RecordDuration(ctx, metricsDomain, "generate_for_templates", time.Since(start), status)
	o.metrics.RecordGenerated(ctx, metricsDomain, "generate_for_templates", countPANs(result))

	return result, err
}

func countPANs(result panDomain.BatchResult) int {
	total := 0
	for _, pans := range result {
		total += len(pans)
	}
	return total
}
