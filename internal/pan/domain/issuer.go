package domain

// IssuerInfo is the answer of a reference lookup for a BIN prefix.
type IssuerInfo struct {
	IssuerName  string
	Brand       Brand
	CountryCode string
}

// UnknownIssuer returns the degraded answer used when a lookup is absent or fails.
func UnknownIssuer() IssuerInfo {
	return IssuerInfo{
		IssuerName:  UnknownValue,
		Brand:       BrandUnknown,
		CountryCode: UnknownValue,
	}
}
