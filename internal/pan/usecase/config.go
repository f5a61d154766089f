package usecase

import (
	"time"
)

// GeneratorConfig holds the thresholds and limits used by the generator.
type GeneratorConfig struct {
	// ExhaustiveThreshold is the wildcard count above which batch generation samples.
	ExhaustiveThreshold int
	// GenerateMaxWildcards is the widest template Generate enumerates in full.
	GenerateMaxWildcards int
	// MaxAttempts is the sampling attempt ceiling used when the caller does not supply one.
	MaxAttempts int
	// StandardLength is the length multi-template generation pads templates to.
	StandardLength int
	// MinBINLength is the prefix length under which multi-template generation logs an advisory.
	MinBINLength int
	// LookupTimeout bounds every reference lookup made during metadata enrichment.
	LookupTimeout time.Duration
}

// DefaultGeneratorConfig returns the standard generator settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		ExhaustiveThreshold:  8,
		GenerateMaxWildcards: 8,
		MaxAttempts:          10000,
		StandardLength:       16,
		MinBINLength:         6,
		LookupTimeout:        2 * time.Second,
	}
}
