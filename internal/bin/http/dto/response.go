// Package dto provides data transfer objects for BIN HTTP responses.
package dto

import (
	"time"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
)

// BINResponse describes the stored issuer of a BIN prefix.
type BINResponse struct {
	BIN         string    `json:"bin"`
	IssuerName  string    `json:"issuer_name"`
	Brand       string    `json:"brand"`
	CardType    string    `json:"card_type,omitempty"`
	CountryCode string    `json:"country_code,omitempty"`
	BankPhone   string    `json:"bank_phone,omitempty"`
	BankURL     string    `json:"bank_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapBINRecordToResponse converts a domain BIN record to an API response. The brand
// is normalized onto the closed brand set.
func MapBINRecordToResponse(record *binDomain.BINRecord) BINResponse {
	return BINResponse{
		BIN:         record.BIN,
		IssuerName:  record.IssuerName,
		Brand:       string(record.IssuerInfo().Brand),
		CardType:    record.CardType,
		CountryCode: record.CountryCode,
		BankPhone:   record.BankPhone,
		BankURL:     record.BankURL,
		UpdatedAt:   record.UpdatedAt,
	}
}

// ImportResponse reports the number of rows loaded by a BIN import.
type ImportResponse struct {
	Imported int `json:"imported"`
}
