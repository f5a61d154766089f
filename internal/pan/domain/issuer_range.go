package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// defaultIssuerPrefixes covers the four major network families plus legacy bands.
var defaultIssuerPrefixes = []string{"4", "5", "51", "52", "53", "54", "55", "34", "37", "6011", "65", "35"}

// IssuerRangeTable is an ordered, read-only set of issuer identification prefixes.
// Prefixes are kept longest first so the most specific range is found first.
type IssuerRangeTable struct {
	prefixes []string
}

// NewIssuerRangeTable validates and orders prefixes. Duplicates are removed.
// Returns ErrInvalidIssuerRange for an empty or non-numeric prefix.
func NewIssuerRangeTable(prefixes []string) (*IssuerRangeTable, error) {
	ordered := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		if prefix == "" || !isDigits(prefix) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIssuerRange, prefix)
		}
		ordered = append(ordered, prefix)
	}

	slices.SortFunc(ordered, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	return &IssuerRangeTable{prefixes: slices.Compact(ordered)}, nil
}

// DefaultIssuerRangeTable returns the built-in range set.
func DefaultIssuerRangeTable() *IssuerRangeTable {
	table, _ := NewIssuerRangeTable(defaultIssuerPrefixes)
	return table
}

// Prefixes returns a copy of the ordered prefixes.
func (t *IssuerRangeTable) Prefixes() []string {
	return slices.Clone(t.prefixes)
}

// Len returns the number of prefixes in the table.
func (t *IssuerRangeTable) Len() int {
	return len(t.prefixes)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
