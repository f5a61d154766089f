package service

import (
	"strings"

	"github.com/allisson/pangen/internal/pan/domain"
)

// RangeMatcher tests candidates against an issuer range table.
// It is read-only after construction and safe for concurrent use.
type RangeMatcher struct {
	prefixes []string
}

// NewRangeMatcher creates a matcher over table. A nil table uses the default ranges.
func NewRangeMatcher(table *domain.IssuerRangeTable) *RangeMatcher {
	if table == nil {
		table = domain.DefaultIssuerRangeTable()
	}
	return &RangeMatcher{prefixes: table.Prefixes()}
}

// Match returns the most specific prefix that candidate starts with.
func (m *RangeMatcher) Match(candidate string) (string, bool) {
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(candidate, prefix) {
			return prefix, true
		}
	}
	return "", false
}

// Matches reports whether candidate starts with any prefix in the table.
func (m *RangeMatcher) Matches(candidate string) bool {
	_, ok := m.Match(candidate)
	return ok
}

// Accept reports whether candidate passes both the checksum and the range check.
func (m *RangeMatcher) Accept(candidate string) bool {
	return luhnValid(candidate) && m.Matches(candidate)
}
