// Package service implements the PAN engine primitives: the modulus-10 checksum,
// issuer range matching and wildcard template expansion.
package service

import (
	"github.com/allisson/pangen/internal/pan/domain"
)

// IsValid reports whether candidate passes the modulus-10 check.
// The last digit has weight 1 and weights alternate 2, 1 leftward; doubled
// digits above 9 have 9 subtracted. An empty string is invalid.
// Returns ErrInvalidCandidate when candidate contains a non-digit character.
func IsValid(candidate string) (bool, error) {
	if candidate == "" {
		return false, nil
	}
	remainder, err := Remainder(candidate)
	if err != nil {
		return false, err
	}
	return remainder == 0, nil
}

// Remainder returns the weighted digit sum of candidate modulo 10.
// A remainder of zero means the checksum holds.
func Remainder(candidate string) (int, error) {
	sum := 0
	double := false
	for i := len(candidate) - 1; i >= 0; i-- {
		c := candidate[i]
		if c < '0' || c > '9' {
			return 0, domain.ErrInvalidCandidate
		}

		digit := int(c - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum % 10, nil
}

// CheckDigit returns the digit that completes partial into a checksum-valid number.
func CheckDigit(partial string) (int, error) {
	remainder, err := Remainder(partial + "0")
	if err != nil {
		return 0, err
	}
	return (10 - remainder) % 10, nil
}

// luhnValid is the hot-path check for candidates the expander already
// guarantees to be digits.
func luhnValid(candidate string) bool {
	ok, err := IsValid(candidate)
	return err == nil && ok
}
