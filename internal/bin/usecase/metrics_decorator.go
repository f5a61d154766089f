package usecase

import (
	"context"
	"io"
	"time"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	"github.com/allisson/pangen/internal/metrics"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// binUseCaseWithMetrics decorates BINUseCase with metrics instrumentation.
type binUseCaseWithMetrics struct {
	next    BINUseCase
	metrics metrics.BusinessMetrics
}

// NewBINUseCaseWithMetrics wraps a BINUseCase with metrics recording.
func NewBINUseCaseWithMetrics(useCase BINUseCase, m metrics.BusinessMetrics) BINUseCase {
	return &binUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (b *binUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	b.metrics.RecordOperation(ctx, "bin", operation, status)
	b.metrics.RecordDuration(ctx, "bin", operation, time.Since(start), status)
}

// Lookup records metrics for issuer lookups.
func (b *binUseCaseWithMetrics) Lookup(ctx context.Context, number string) (*panDomain.IssuerInfo, error) {
	start := time.Now()
	info, err := b.next.Lookup(ctx, number)
	b.record(ctx, "lookup", start, err)
	return info, err
}

// Find records metrics for record lookups.
func (b *binUseCaseWithMetrics) Find(ctx context.Context, number string) (*binDomain.BINRecord, error) {
	start := time.Now()
	record, err := b.next.Find(ctx, number)
	b.record(ctx, "find", start, err)
	return record, err
}

// Import records metrics for CSV imports.
func (b *binUseCaseWithMetrics) Import(ctx context.Context, r io.Reader) (int, error) {
	start := time.Now()
	n, err := b.next.Import(ctx, r)
	b.record(ctx, "import", start, err)
	return n, err
}

// RangeTable records metrics for range table construction.
func (b *binUseCaseWithMetrics) RangeTable(ctx context.Context) (*panDomain.IssuerRangeTable, error) {
	start := time.Now()
	table, err := b.next.RangeTable(ctx)
	b.record(ctx, "range_table", start, err)
	return table, err
}
