package repository

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	binDomain "github.com/allisson/pangen/internal/bin/domain"
	apperrors "github.com/allisson/pangen/internal/errors"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// rangeFile is the YAML layout of an issuer range file:
//
//	ranges:
//	  - "4"
//	  - "51"
type rangeFile struct {
	Ranges []string `yaml:"ranges"`
}

// ParseIssuerRanges reads an issuer range table from a YAML document.
func ParseIssuerRanges(r io.Reader) (*panDomain.IssuerRangeTable, error) {
	var doc rangeFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if apperrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", binDomain.ErrInvalidRangeFile)
		}
		return nil, fmt.Errorf("%w: %v", binDomain.ErrInvalidRangeFile, err)
	}
	if len(doc.Ranges) == 0 {
		return nil, fmt.Errorf("%w: no ranges defined", binDomain.ErrInvalidRangeFile)
	}
	return panDomain.NewIssuerRangeTable(doc.Ranges)
}

// LoadIssuerRangeFile reads an issuer range table from a YAML file on disk.
func LoadIssuerRangeFile(path string) (*panDomain.IssuerRangeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open issuer range file")
	}
	defer func() {
		_ = f.Close()
	}()
	return ParseIssuerRanges(f)
}
