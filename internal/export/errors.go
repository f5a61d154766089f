// Package export writes generated PANs and their metadata as lines, CSV or JSON,
// reads plain PAN exports back, and stores export objects in blob buckets.
package export

import (
	"errors"

	apperrors "github.com/allisson/pangen/internal/errors"
)

var (
	// ErrPersistenceFailure indicates an export could not be written or read.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrInvalidFormat indicates an unsupported export format.
	ErrInvalidFormat = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid export format")
)
