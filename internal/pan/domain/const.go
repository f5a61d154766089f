// Package domain defines the PAN generation domain model: wildcard templates,
// validated card numbers, card network brands, issuer ranges and synthetic metadata.
package domain

// Wildcard marks a template position whose digit is generated.
const Wildcard = '?'

// Template and PAN length constraints
const (
	// MaxTemplateLength is the standard PAN length ceiling.
	MaxTemplateLength = 16

	// BINLength is the number of leading digits reported as the bank identification number.
	BINLength = 6

	// LastFourLength is the number of trailing digits reported for display.
	LastFourLength = 4
)

// UnknownValue is the sentinel used by metadata fields that could not be resolved.
const UnknownValue = "Unknown"
