// Package usecase defines interfaces and implementations for PAN generation use cases.
// Provides exhaustive and sampled generation from wildcard templates, metadata enrichment,
// parallel multi-template orchestration and generation history.
package usecase

import (
	"context"

	"github.com/google/uuid"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// ReferenceLookup resolves issuer details for a BIN prefix.
// Implementations should honor ctx cancellation; a missing prefix is reported as an
// error wrapping errors.ErrNotFound.
type ReferenceLookup interface {
	Lookup(ctx context.Context, prefix string) (*panDomain.IssuerInfo, error)
}

// GenerationRecordRepository defines the interface for generation history persistence.
type GenerationRecordRepository interface {
	// CreateBatch inserts all records of a batch. Uses transaction support via database.GetTx().
	CreateBatch(ctx context.Context, records []*panDomain.GenerationRecord) error

	// ListByBatch retrieves the records of a batch ordered by position with pagination.
	ListByBatch(
		ctx context.Context,
		batchID uuid.UUID,
		offset, limit int,
	) ([]*panDomain.GenerationRecord, error)
}

// GeneratorUseCase defines the PAN generation operations.
type GeneratorUseCase interface {
	// Validate checks a single PAN against the checksum and the issuer ranges.
	Validate(ctx context.Context, pan string) (*panDomain.ValidationResult, error)

	// Generate enumerates every substitution of template and keeps, in enumeration
	// order, those that pass both the checksum and the issuer range check.
	Generate(ctx context.Context, template string) ([]panDomain.ValidatedPAN, error)

	// GenerateBatch returns at most count validated PANs for template. Templates
	// without wildcards are checksum-checked directly, wide templates are sampled
	// within maxAttempts draws and the rest are enumerated and subsampled.
	GenerateBatch(
		ctx context.Context,
		template string,
		count, maxAttempts int,
	) ([]panDomain.ValidatedPAN, error)

	// GenerateMulti runs GenerateBatch for every template after padding it with
	// wildcards to the standard length. Results are keyed by the original input.
	GenerateMulti(ctx context.Context, templates []string, count int) (panDomain.BatchResult, error)

	// GenerateWithMetadata runs GenerateBatch and attaches brand, expiry, CVV and
	// issuer details to every result.
	GenerateWithMetadata(ctx context.Context, template string, count int) ([]*panDomain.PANMetadata, error)
}

// OrchestratorUseCase fans generation out across a bounded worker pool.
type OrchestratorUseCase interface {
	// GenerateForTemplates runs one isolated GenerateBatch task per distinct template.
	// A failing task maps to an empty list. When ctx is done, templates that did not
	// complete are absent and ctx.Err() is returned alongside the partial result.
	GenerateForTemplates(ctx context.Context, templates []string, count int) (panDomain.BatchResult, error)
}

// HistoryUseCase stores and lists generated batches.
type HistoryUseCase interface {
	// Save stores records as one batch and returns its id.
	Save(ctx context.Context, template string, records []*panDomain.PANMetadata) (uuid.UUID, error)

	// List returns the records of a batch in stored order.
	List(ctx context.Context, batchID uuid.UUID, offset, limit int) ([]*panDomain.GenerationRecord, error)
}
