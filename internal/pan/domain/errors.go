package domain

import (
	"github.com/allisson/pangen/internal/errors"
)

var (
	// ErrInvalidTemplate indicates a template with characters other than digits and
	// wildcards, an empty template, or one longer than MaxTemplateLength.
	ErrInvalidTemplate = errors.Wrap(errors.ErrInvalidInput, "invalid template")

	// ErrInvalidCandidate indicates checksum input containing non-digit characters.
	ErrInvalidCandidate = errors.Wrap(errors.ErrInvalidInput, "candidate must contain only digits")

	// ErrOverflow indicates the wildcard count exceeds the safe exhaustive enumeration width.
	ErrOverflow = errors.Wrap(errors.ErrInvalidInput, "wildcard count exceeds exhaustive enumeration width")

	// ErrInvalidIssuerRange indicates an issuer range prefix that is empty or not numeric.
	ErrInvalidIssuerRange = errors.Wrap(errors.ErrInvalidInput, "invalid issuer range prefix")

	// ErrLookupUnavailable indicates the reference lookup failed or timed out.
	ErrLookupUnavailable = errors.Wrap(errors.ErrUnavailable, "reference lookup unavailable")

	// ErrGenerationRecordNotFound indicates no stored generation batch matches the id.
	ErrGenerationRecordNotFound = errors.Wrap(errors.ErrNotFound, "generation batch not found")
)
