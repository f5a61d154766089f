package validation

import (
	validation "github.com/jellydator/validation"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// Template validates a PAN template: digits and '?' wildcards, at most 16 characters.
var Template = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_template_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := panDomain.ParseTemplate(s); err != nil {
		return validation.NewError("validation_template", "must contain only digits and '?' wildcards, up to 16 characters")
	}
	return nil
})
