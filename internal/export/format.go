package export

import (
	"fmt"
	"strings"
)

// Format selects the export encoding.
type Format string

const (
	// FormatLines writes one PAN per line.
	FormatLines Format = "lines"

	// FormatCSV writes a header row followed by one row per record.
	FormatCSV Format = "csv"

	// FormatJSON writes a JSON array, or an object for template keyed results.
	FormatJSON Format = "json"
)

// ParseFormat converts a format name into a Format. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatLines, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, name)
	}
}

// ContentType returns the media type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension of the format, without the dot.
func (f Format) Extension() string {
	if f == FormatLines {
		return "txt"
	}
	return string(f)
}
