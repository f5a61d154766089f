package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
	panService "github.com/allisson/pangen/internal/pan/service"
)

// cancelCheckInterval is how many enumerated candidates are checked between context polls.
const cancelCheckInterval = 4096

// generatorUseCase implements GeneratorUseCase on top of the expander, the range
// matcher and an optional reference lookup.
type generatorUseCase struct {
	cfg      GeneratorConfig
	expander *panService.Expander
	matcher  *panService.RangeMatcher
	lookup   ReferenceLookup
	random   panService.RandomSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewGeneratorUseCase creates a GeneratorUseCase. lookup may be nil, in which case
// issuer details degrade to "Unknown". A nil random source uses the global one.
func NewGeneratorUseCase(
	cfg GeneratorConfig,
	expander *panService.Expander,
	matcher *panService.RangeMatcher,
	lookup ReferenceLookup,
	random panService.RandomSource,
	logger *slog.Logger,
) GeneratorUseCase {
	if random == nil {
		random = panService.NewGlobalRandomSource()
	}
	defaults := DefaultGeneratorConfig()
	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = defaults.LookupTimeout
	}
	if cfg.GenerateMaxWildcards <= 0 {
		cfg.GenerateMaxWildcards = defaults.GenerateMaxWildcards
	}
	if cfg.StandardLength <= 0 || cfg.StandardLength > panDomain.MaxTemplateLength {
		cfg.StandardLength = defaults.StandardLength
	}
	return &generatorUseCase{
		cfg:      cfg,
		expander: expander,
		matcher:  matcher,
		lookup:   lookup,
		random:   random,
		logger:   logger,
		now:      time.Now,
	}
}

// Validate checks a single PAN.
func (g *generatorUseCase) Validate(ctx context.Context, pan string) (*panDomain.ValidationResult, error) {
	if pan == "" {
		return nil, apperrors.Wrap(panDomain.ErrInvalidCandidate, "pan is empty")
	}
	valid, err := panService.IsValid(pan)
	if err != nil {
		return nil, err
	}

	matched, inRange := g.matcher.Match(pan)
	validated := panDomain.ValidatedPAN(pan)

	return &panDomain.ValidationResult{
		PAN:          pan,
		Valid:        valid,
		InRange:      inRange,
		MatchedRange: matched,
		Brand:        panDomain.DetectBrand(pan),
		BIN:          validated.BIN(),
		LastFour:     validated.LastFour(),
	}, nil
}

// Generate enumerates the full substitution space of template. Templates wider
// than GenerateMaxWildcards are rejected with ErrOverflow before any candidate
// is built.
func (g *generatorUseCase) Generate(ctx context.Context, template string) ([]panDomain.ValidatedPAN, error) {
	tmpl, err := panDomain.ParseTemplate(template)
	if err != nil {
		return nil, err
	}
	if w := tmpl.WildcardCount(); w > g.cfg.GenerateMaxWildcards {
		return nil, apperrors.Wrapf(
			panDomain.ErrOverflow,
			"template has %d wildcards, generate allows at most %d",
			w,
			g.cfg.GenerateMaxWildcards,
		)
	}
	return g.generateExhaustive(ctx, tmpl)
}

func (g *generatorUseCase) generateExhaustive(
	ctx context.Context,
	tmpl panDomain.Template,
) ([]panDomain.ValidatedPAN, error) {
	seq, err := g.expander.Exhaustive(tmpl)
	if err != nil {
		return nil, err
	}

	results := []panDomain.ValidatedPAN{}
	examined := 0
	for candidate := range seq {
		if examined%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		examined++

		if g.matcher.Accept(candidate) {
			results = append(results, panDomain.ValidatedPAN(candidate))
		}
	}
	return results, nil
}

// GenerateBatch returns at most count PANs for template.
func (g *generatorUseCase) GenerateBatch(
	ctx context.Context,
	template string,
	count, maxAttempts int,
) ([]panDomain.ValidatedPAN, error) {
	if count <= 0 {
		return []panDomain.ValidatedPAN{}, nil
	}
	if maxAttempts < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "max attempts must not be negative")
	}

	tmpl, err := panDomain.ParseTemplate(template)
	if err != nil {
		return nil, err
	}

	switch w := tmpl.WildcardCount(); {
	case tmpl.IsConcrete():
		valid, err := panService.IsValid(tmpl.String())
		if err != nil {
			return nil, err
		}
		if !valid {
			return []panDomain.ValidatedPAN{}, nil
		}
		return []panDomain.ValidatedPAN{panDomain.ValidatedPAN(tmpl.String())}, nil

	case w > g.cfg.ExhaustiveThreshold:
		sampled, err := g.expander.Sample(ctx, tmpl, count, maxAttempts, g.matcher.Accept)
		if err != nil {
			return nil, err
		}
		return toValidated(sampled), nil

	default:
		all, err := g.generateExhaustive(ctx, tmpl)
		if err != nil {
			return nil, err
		}
		if count >= len(all) {
			return all, nil
		}
		return toValidated(g.expander.Subset(panDomain.Strings(all), count)), nil
	}
}

// GenerateMulti generates count PANs for every template.
func (g *generatorUseCase) GenerateMulti(
	ctx context.Context,
	templates []string,
	count int,
) (panDomain.BatchResult, error) {
	result := make(panDomain.BatchResult, len(templates))
	for _, input := range templates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, done := result[input]; done {
			continue
		}

		padded := panDomain.PadTemplate(input, g.cfg.StandardLength)
		g.adviseShortPrefix(input, padded)

		pans, err := g.GenerateBatch(ctx, padded, count, g.cfg.MaxAttempts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			g.logger.Warn("template generation failed",
				slog.String("template", input),
				slog.Any("error", err),
			)
			pans = []panDomain.ValidatedPAN{}
		}
		result[input] = pans
	}
	return result, nil
}

// adviseShortPrefix logs when a well-formed template fixes fewer leading digits
// than MinBINLength. Malformed input is reported by the generation failure instead.
func (g *generatorUseCase) adviseShortPrefix(input, padded string) {
	tmpl, err := panDomain.ParseTemplate(padded)
	if err != nil {
		return
	}
	if prefix := tmpl.FixedPrefix(); len(prefix) < g.cfg.MinBINLength {
		g.logger.Warn("bin prefix is shorter than recommended",
			slog.String("template", input),
			slog.Int("prefix_length", len(prefix)),
			slog.Int("min_length", g.cfg.MinBINLength),
		)
	}
}

// GenerateWithMetadata generates count PANs and attaches synthetic card data.
func (g *generatorUseCase) GenerateWithMetadata(
	ctx context.Context,
	template string,
	count int,
) ([]*panDomain.PANMetadata, error) {
	pans, err := g.GenerateBatch(ctx, template, count, g.cfg.MaxAttempts)
	if err != nil {
		return nil, err
	}

	now := g.now()
	records := make([]*panDomain.PANMetadata, 0, len(pans))
	for _, pan := range pans {
		issuer := g.lookupIssuer(ctx, pan.BIN())
		yearsAhead := 1 + g.random.IntN(5)

		records = append(records, &panDomain.PANMetadata{
			PAN:      pan,
			Brand:    panDomain.DetectBrand(pan.String()),
			Expiry:   panDomain.NewExpiry(now.AddDate(yearsAhead, 0, 0)),
			CVV:      strconv.Itoa(100 + g.random.IntN(900)),
			BIN:      pan.BIN(),
			LastFour: pan.LastFour(),
			Issuer:   issuer.IssuerName,
			Country:  issuer.CountryCode,
		})
	}
	return records, nil
}

type lookupAnswer struct {
	info *panDomain.IssuerInfo
	err  error
}

// lookupIssuer resolves issuer details within the configured timeout. Any failure
// degrades to UnknownIssuer.
func (g *generatorUseCase) lookupIssuer(ctx context.Context, prefix string) panDomain.IssuerInfo {
	if g.lookup == nil {
		return panDomain.UnknownIssuer()
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.cfg.LookupTimeout)
	defer cancel()

	answer := make(chan lookupAnswer, 1)
	go func() {
		info, err := g.lookup.Lookup(lookupCtx, prefix)
		answer <- lookupAnswer{info: info, err: err}
	}()

	var got lookupAnswer
	select {
	case got = <-answer:
	case <-lookupCtx.Done():
		got = lookupAnswer{err: lookupCtx.Err()}
	}

	if got.err != nil || got.info == nil {
		if got.err != nil && !apperrors.Is(got.err, apperrors.ErrNotFound) {
			g.logger.Warn("issuer lookup degraded",
				slog.String("prefix", prefix),
				slog.Any("error", fmt.Errorf("%w: %w", panDomain.ErrLookupUnavailable, got.err)),
			)
		}
		return panDomain.UnknownIssuer()
	}

	info := *got.info
	if info.IssuerName == "" {
		info.IssuerName = panDomain.UnknownValue
	}
	if info.CountryCode == "" {
		info.CountryCode = panDomain.UnknownValue
	}
	if info.Brand == "" {
		info.Brand = panDomain.BrandUnknown
	}
	return info
}

func toValidated(candidates []string) []panDomain.ValidatedPAN {
	out := make([]panDomain.ValidatedPAN, len(candidates))
	for i, c := range candidates {
		out[i] = panDomain.ValidatedPAN(c)
	}
	return out
}
