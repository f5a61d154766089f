// Package domain defines the BIN reference data model.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
	customValidation "github.com/allisson/pangen/internal/validation"
)

// MaxBINLength is the longest prefix stored in the reference table.
const MaxBINLength = 8

// BINRecord describes the issuer of a BIN prefix.
type BINRecord struct {
	BIN         string
	IssuerName  string
	Brand       string
	CardType    string
	CountryCode string
	BankPhone   string
	BankURL     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the record fields required to store it.
func (b *BINRecord) Validate() error {
	err := validation.ValidateStruct(b,
		validation.Field(&b.BIN,
			validation.Required,
			customValidation.Digits,
			validation.Length(1, MaxBINLength),
		),
		validation.Field(&b.IssuerName, validation.Required, customValidation.NotBlank),
		validation.Field(&b.CountryCode, customValidation.CountryCode),
	)
	return customValidation.WrapValidationError(err)
}

// IssuerInfo projects the record onto the lookup answer used by PAN metadata.
// Blank fields degrade to "Unknown".
func (b *BINRecord) IssuerInfo() *panDomain.IssuerInfo {
	info := panDomain.UnknownIssuer()
	if b.IssuerName != "" {
		info.IssuerName = b.IssuerName
	}
	if b.CountryCode != "" {
		info.CountryCode = b.CountryCode
	}
	info.Brand = panDomain.ParseBrand(b.Brand)
	return &info
}
