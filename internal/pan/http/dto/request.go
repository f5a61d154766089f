// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/pangen/internal/validation"
)

const (
	// MaxCount caps the number of PANs requested per template.
	MaxCount = 10000

	// MaxTemplates caps the number of templates per multi or parallel request.
	MaxTemplates = 256

	// MaxTimeoutMs caps the deadline of a parallel request.
	MaxTimeoutMs = 60000
)

// ValidatePANRequest contains a single PAN to check.
type ValidatePANRequest struct {
	PAN string `json:"pan"`
}

// Validate checks if the validate request is valid.
func (r *ValidatePANRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PAN,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Digits,
			validation.Length(1, 19),
		),
	)
}

// GenerateRequest asks for the full substitution space of a template.
type GenerateRequest struct {
	Template string `json:"template"`
}

// Validate checks if the generate request is valid.
func (r *GenerateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Template, validation.Required, customValidation.Template),
	)
}

// BatchRequest asks for at most Count PANs from a template.
type BatchRequest struct {
	Template    string `json:"template"`
	Count       int    `json:"count"`
	MaxAttempts *int   `json:"max_attempts,omitempty"`
}

// Validate checks if the batch request is valid.
func (r *BatchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Template, validation.Required, customValidation.Template),
		validation.Field(&r.Count, validation.Min(0), validation.Max(MaxCount)),
		validation.Field(&r.MaxAttempts, validation.Min(0)),
	)
}

// MultiRequest asks for Count PANs from each prefix, padded to the standard length.
// Malformed prefixes are answered with empty lists, so entries are not validated here.
type MultiRequest struct {
	Prefixes []string `json:"prefixes"`
	Count    int      `json:"count"`
}

// Validate checks if the multi request is valid.
func (r *MultiRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Prefixes, validation.Required, validation.Length(1, MaxTemplates)),
		validation.Field(&r.Count, validation.Min(0), validation.Max(MaxCount)),
	)
}

// MetadataRequest asks for PANs with synthetic card data, optionally stored as a batch.
type MetadataRequest struct {
	Template string `json:"template"`
	Count    int    `json:"count"`
	Persist  bool   `json:"persist"`
}

// Validate checks if the metadata request is valid.
func (r *MetadataRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Template, validation.Required, customValidation.Template),
		validation.Field(&r.Count, validation.Min(0), validation.Max(MaxCount)),
	)
}

// ParallelRequest asks for Count PANs from each template, generated concurrently.
// When TimeoutMs elapses, completed templates are returned and the response is partial.
type ParallelRequest struct {
	Templates []string `json:"templates"`
	Count     int      `json:"count"`
	TimeoutMs int      `json:"timeout_ms,omitempty"`
}

// Validate checks if the parallel request is valid.
func (r *ParallelRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Templates, validation.Required, validation.Length(1, MaxTemplates)),
		validation.Field(&r.Count, validation.Min(0), validation.Max(MaxCount)),
		validation.Field(&r.TimeoutMs, validation.Min(0), validation.Max(MaxTimeoutMs)),
	)
}
