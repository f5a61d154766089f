package dto

import (
	"time"

	"github.com/allisson/pangen/internal/export"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// ValidationResponse describes a checked PAN.
type ValidationResponse struct {
	PAN          string `json:"pan"`
	Valid        bool   `json:"valid"`
	InRange      bool   `json:"in_range"`
	MatchedRange string `json:"matched_range,omitempty"`
	Brand        string `json:"brand"`
	BIN          string `json:"bin"`
	LastFour     string `json:"last_four"`
}

// MapValidationResultToResponse converts a domain validation result to an API response.
func MapValidationResultToResponse(result *panDomain.ValidationResult) ValidationResponse {
	return ValidationResponse{
		PAN:          result.PAN,
		Valid:        result.Valid,
		InRange:      result.InRange,
		MatchedRange: result.MatchedRange,
		Brand:        string(result.Brand),
		BIN:          result.BIN,
		LastFour:     result.LastFour,
	}
}

// PANListResponse holds the PANs produced for one template.
type PANListResponse struct {
	Template string   `json:"template"`
	Count    int      `json:"count"`
	PANs     []string `json:"pans"`
}

// MapPANsToResponse converts generated PANs to an API response.
func MapPANsToResponse(template string, pans []panDomain.ValidatedPAN) PANListResponse {
	return PANListResponse{
		Template: template,
		Count:    len(pans),
		PANs:     panDomain.Strings(pans),
	}
}

// BatchResultResponse holds the PANs produced per template. Partial is set when the
// request deadline elapsed before every template completed.
type BatchResultResponse struct {
	Results map[string][]string `json:"results"`
	Partial bool                `json:"partial"`
}

// MapBatchResultToResponse converts a template keyed result to an API response.
func MapBatchResultToResponse(result panDomain.BatchResult, partial bool) BatchResultResponse {
	out := make(map[string][]string, len(result))
	for template, pans := range result {
		out[template] = panDomain.Strings(pans)
	}
	return BatchResultResponse{Results: out, Partial: partial}
}

// MetadataResponse holds PANs with synthetic card data. BatchID is set when the
// batch was stored.
type MetadataResponse struct {
	BatchID *string                 `json:"batch_id,omitempty"`
	Records []export.MetadataRecord `json:"records"`
}

// MapMetadataToResponse converts metadata records to an API response.
func MapMetadataToResponse(records []*panDomain.PANMetadata, batchID *string) MetadataResponse {
	flat := make([]export.MetadataRecord, 0, len(records))
	for _, m := range records {
		flat = append(flat, export.NewMetadataRecord(m))
	}
	return MetadataResponse{BatchID: batchID, Records: flat}
}

// GenerationRecordResponse is one stored record of a batch.
type GenerationRecordResponse struct {
	Position  int       `json:"position"`
	Template  string    `json:"template"`
	PAN       string    `json:"pan"`
	Brand     string    `json:"brand"`
	Expiry    string    `json:"expiry"`
	CVV       string    `json:"cvv"`
	Issuer    string    `json:"issuer"`
	CreatedAt time.Time `json:"created_at"`
}

// ListGenerationRecordsResponse is one page of a stored batch.
type ListGenerationRecordsResponse struct {
	BatchID string                     `json:"batch_id"`
	Data    []GenerationRecordResponse `json:"data"`
}

// MapGenerationRecordsToListResponse converts stored records to a paged API response.
func MapGenerationRecordsToListResponse(
	batchID string,
	records []*panDomain.GenerationRecord,
) ListGenerationRecordsResponse {
	data := make([]GenerationRecordResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, GenerationRecordResponse{
			Position:  rec.Position,
			Template:  rec.Template,
			PAN:       rec.PAN,
			Brand:     string(rec.Brand),
			Expiry:    rec.Expiry,
			CVV:       rec.CVV,
			Issuer:    rec.Issuer,
			CreatedAt: rec.CreatedAt,
		})
	}
	return ListGenerationRecordsResponse{BatchID: batchID, Data: data}
}
