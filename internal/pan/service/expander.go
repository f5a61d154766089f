package service

import (
	"context"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/allisson/pangen/internal/pan/domain"
)

// cancelCheckInterval is how many candidates are processed between context checks.
const cancelCheckInterval = 1024

// MaxExhaustiveWildcards is the widest enumeration whose space, 10^w, fits in a uint64.
const MaxExhaustiveWildcards = 19

// RandomSource supplies uniform integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewGlobalRandomSource returns a RandomSource backed by the goroutine-safe
// top-level math/rand/v2 functions.
func NewGlobalRandomSource() RandomSource {
	return globalSource{}
}

// Expander turns templates into candidate sequences.
type Expander struct {
	maxWildcards int
	random       RandomSource
}

// NewExpander creates an expander. maxWildcards bounds exhaustive enumeration and is
// clamped to MaxExhaustiveWildcards; a nil random source uses NewGlobalRandomSource.
func NewExpander(maxWildcards int, random RandomSource) *Expander {
	if maxWildcards <= 0 || maxWildcards > MaxExhaustiveWildcards {
		maxWildcards = MaxExhaustiveWildcards
	}
	if random == nil {
		random = NewGlobalRandomSource()
	}
	return &Expander{maxWildcards: maxWildcards, random: random}
}

// Exhaustive returns every substitution of t in numeric order 0 .. 10^w-1.
// Assignment k is rendered zero-padded to width w and its digits fill the
// wildcard positions left to right. Each range over the sequence starts again
// from zero. Returns ErrOverflow when w exceeds the configured width.
func (e *Expander) Exhaustive(t domain.Template) (iter.Seq[string], error) {
	w := t.WildcardCount()
	if w > e.maxWildcards {
		return nil, domain.ErrOverflow
	}

	total := uint64(1)
	for range w {
		total *= 10
	}
	positions := t.WildcardPositions()
	raw := t.String()

	return func(yield func(string) bool) {
		buf := []byte(raw)
		for k := uint64(0); k < total; k++ {
			v := k
			for i := len(positions) - 1; i >= 0; i-- {
				buf[positions[i]] = byte('0' + v%10)
				v /= 10
			}
			if !yield(string(buf)) {
				return
			}
		}
	}, nil
}

// Candidate draws one independent uniform digit for every wildcard of t.
func (e *Expander) Candidate(t domain.Template) string {
	buf := []byte(t.String())
	for _, pos := range t.WildcardPositions() {
		buf[pos] = byte('0' + e.random.IntN(10))
	}
	return string(buf)
}

// Sample draws random candidates until count distinct accepted values are found or
// maxAttempts draws have been made. Results keep draw order. When ctx is done the
// values found so far are returned together with ctx.Err().
func (e *Expander) Sample(
	ctx context.Context,
	t domain.Template,
	count, maxAttempts int,
	accept func(string) bool,
) ([]string, error) {
	if count <= 0 || maxAttempts <= 0 {
		return []string{}, nil
	}

	seen := make(map[string]struct{}, count)
	results := make([]string, 0, count)
	for attempt := 0; attempt < maxAttempts && len(results) < count; attempt++ {
		if attempt%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return results, err
			}
		}

		candidate := e.Candidate(t)
		if _, dup := seen[candidate]; dup {
			continue
		}
		if !accept(candidate) {
			continue
		}
		seen[candidate] = struct{}{}
		results = append(results, candidate)
	}
	return results, nil
}

// Subset returns count uniformly chosen elements of items without replacement,
// kept in their original relative order.
func (e *Expander) Subset(items []string, count int) []string {
	if count >= len(items) {
		return items
	}
	if count <= 0 {
		return []string{}
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates over the first count slots
	for i := 0; i < count; i++ {
		j := i + e.random.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	chosen := idx[:count]
	slices.Sort(chosen)

	out := make([]string, count)
	for i, j := range chosen {
		out[i] = items[j]
	}
	return out
}
