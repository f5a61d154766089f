package domain

// ValidatedPAN is a candidate that passed both the checksum and the issuer range check.
type ValidatedPAN string

// String returns the PAN digits.
func (p ValidatedPAN) String() string {
	return string(p)
}

// BIN returns the leading BINLength digits, or the whole PAN when shorter.
func (p ValidatedPAN) BIN() string {
	if len(p) < BINLength {
		return string(p)
	}
	return string(p[:BINLength])
}

// LastFour returns the trailing LastFourLength digits, or the whole PAN when shorter.
func (p ValidatedPAN) LastFour() string {
	if len(p) < LastFourLength {
		return string(p)
	}
	return string(p[len(p)-LastFourLength:])
}

// BatchResult maps each submitted template, in its original string form, to the
// PANs produced for it in discovery order.
type BatchResult map[string][]ValidatedPAN

// Strings converts a PAN slice to plain strings.
func Strings(pans []ValidatedPAN) []string {
	out := make([]string, len(pans))
	for i, p := range pans {
		out[i] = string(p)
	}
	return out
}

// ValidationResult describes a single PAN checked against the checksum and the issuer ranges.
type ValidationResult struct {
	PAN          string
	Valid        bool
	InRange      bool
	MatchedRange string
	Brand        Brand
	BIN          string
	LastFour     string
}
