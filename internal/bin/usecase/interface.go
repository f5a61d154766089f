// Package usecase implements BIN reference lookups, CSV imports and issuer range
// table construction from stored BINs.
package usecase

import (
	"context"
	"io"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// BINRepository defines the interface for BIN reference persistence.
type BINRepository interface {
	// Upsert inserts or replaces a BIN record. Uses transaction support via database.GetTx().
	Upsert(ctx context.Context, record *binDomain.BINRecord) error

	// FindLongestPrefix returns the longest stored BIN prefixing number, or ErrBINNotFound.
	FindLongestPrefix(ctx context.Context, number string) (*binDomain.BINRecord, error)

	// ListPrefixes returns every stored BIN.
	ListPrefixes(ctx context.Context) ([]string, error)
}

// BINUseCase defines the BIN reference operations.
type BINUseCase interface {
	// Lookup resolves issuer details for the longest stored prefix of number.
	Lookup(ctx context.Context, number string) (*panDomain.IssuerInfo, error)

	// Find returns the full stored record for the longest stored prefix of number.
	Find(ctx context.Context, number string) (*binDomain.BINRecord, error)

	// Import upserts every row of a CSV document inside one transaction and returns
	// the number of rows stored.
	Import(ctx context.Context, r io.Reader) (int, error)

	// RangeTable builds an issuer range table from every stored BIN.
	RangeTable(ctx context.Context) (*panDomain.IssuerRangeTable, error)
}
