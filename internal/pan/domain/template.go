package domain

import (
	"fmt"
	"strings"
)

// Template is a parsed PAN pattern of fixed digits and wildcard positions.
// A Template is immutable once parsed.
type Template struct {
	raw       string
	wildcards []int
}

// ParseTemplate validates s and records its wildcard positions.
// Returns ErrInvalidTemplate for empty input, input longer than MaxTemplateLength,
// or any character that is neither a decimal digit nor Wildcard.
func ParseTemplate(s string) (Template, error) {
	if s == "" {
		return Template{}, fmt.Errorf("%w: template is empty", ErrInvalidTemplate)
	}
	if len(s) > MaxTemplateLength {
		return Template{}, fmt.Errorf(
			"%w: length %d exceeds %d",
			ErrInvalidTemplate,
			len(s),
			MaxTemplateLength,
		)
	}

	var wildcards []int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == Wildcard:
			wildcards = append(wildcards, i)
		case c < '0' || c > '9':
			return Template{}, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidTemplate, c, i)
		}
	}

	return Template{raw: s, wildcards: wildcards}, nil
}

// String returns the template in its original form.
func (t Template) String() string {
	return t.raw
}

// Len returns the candidate length produced by the template.
func (t Template) Len() int {
	return len(t.raw)
}

// WildcardCount returns the number of generated positions.
func (t Template) WildcardCount() int {
	return len(t.wildcards)
}

// WildcardPositions returns a copy of the wildcard indexes in left-to-right order.
func (t Template) WildcardPositions() []int {
	positions := make([]int, len(t.wildcards))
	copy(positions, t.wildcards)
	return positions
}

// IsConcrete reports whether the template has no wildcards.
func (t Template) IsConcrete() bool {
	return len(t.wildcards) == 0
}

// FixedPrefix returns the leading fixed digits, up to the first wildcard.
func (t Template) FixedPrefix() string {
	if len(t.wildcards) == 0 {
		return t.raw
	}
	return t.raw[:t.wildcards[0]]
}

// PadTemplate right-pads s with wildcards up to length. Longer inputs are returned unchanged.
func PadTemplate(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(string(Wildcard), length-len(s))
}
