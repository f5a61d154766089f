package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPageLimit is the page size used when limit is not given.
	DefaultPageLimit = 100

	// MaxPageLimit caps the page size of listing endpoints.
	MaxPageLimit = 1000
)

// Output formats accepted by the format query parameter.
const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatLines = "lines"
)

// ParsePagination parses the offset and limit query parameters.
// offset defaults to 0 and limit to DefaultPageLimit, capped at MaxPageLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxPageLimit)
	}

	return offset, limit, nil
}

// ParseFormat returns the requested output format, FormatJSON when absent.
func ParseFormat(c *gin.Context) (string, error) {
	format := c.DefaultQuery("format", FormatJSON)
	switch format {
	case FormatJSON, FormatCSV, FormatLines:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format parameter: must be one of json, csv, lines")
	}
}
