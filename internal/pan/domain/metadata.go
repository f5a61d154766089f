package domain

import (
	"fmt"
	"time"
)

// Expiry is a card expiration month and year.
type Expiry struct {
	Month time.Month
	Year  int
}

// NewExpiry returns the expiry of t.
func NewExpiry(t time.Time) Expiry {
	return Expiry{Month: t.Month(), Year: t.Year()}
}

// String formats the expiry as MM/YY.
func (e Expiry) String() string {
	return fmt.Sprintf("%02d/%02d", int(e.Month), e.Year%100)
}

// PANMetadata associates a ValidatedPAN with synthetic card data.
// It is created once per PAN and never mutated.
type PANMetadata struct {
	PAN      ValidatedPAN
	Brand    Brand
	Expiry   Expiry
	CVV      string
	BIN      string
	LastFour string
	Issuer   string
	Country  string
}
