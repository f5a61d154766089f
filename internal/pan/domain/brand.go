package domain

import (
	"strings"
)

// Brand is the closed set of card network families the generator classifies.
type Brand string

const (
	BrandVisa       Brand = "Visa"
	BrandMastercard Brand = "Mastercard"
	BrandAmex       Brand = "Amex"
	BrandUnknown    Brand = "Unknown"
)

// String returns the brand label.
func (b Brand) String() string {
	return string(b)
}

// DetectBrand classifies a PAN by its first one or two digits.
func DetectBrand(pan string) Brand {
	switch {
	case strings.HasPrefix(pan, "4"):
		return BrandVisa
	case len(pan) >= 2 && pan[0] == '5' && pan[1] >= '1' && pan[1] <= '5':
		return BrandMastercard
	case strings.HasPrefix(pan, "34"), strings.HasPrefix(pan, "37"):
		return BrandAmex
	default:
		return BrandUnknown
	}
}

// ParseBrand maps a free-form network name onto the closed Brand set.
// Case, spaces, dashes and underscores are ignored.
func ParseBrand(name string) Brand {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))

	switch normalized {
	case "visa", "visaelectron":
		return BrandVisa
	case "mastercard", "mc", "master":
		return BrandMastercard
	case "amex", "americanexpress":
		return BrandAmex
	default:
		return BrandUnknown
	}
}
