package domain

import (
	"github.com/allisson/pangen/internal/errors"
)

var (
	// ErrBINNotFound indicates no stored BIN prefixes the requested number.
	ErrBINNotFound = errors.Wrap(errors.ErrNotFound, "bin not found")

	// ErrInvalidBINFile indicates a BIN import file that cannot be parsed.
	ErrInvalidBINFile = errors.Wrap(errors.ErrInvalidInput, "invalid bin file")

	// ErrInvalidRangeFile indicates an issuer range file that cannot be parsed.
	ErrInvalidRangeFile = errors.Wrap(errors.ErrInvalidInput, "invalid issuer range file")
)
