package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

// ReadPANs reads PANs written by WritePANs. For CSV input the pan column is located
// by header name, so metadata exports can be read too. Blank lines are skipped.
func ReadPANs(r io.Reader, format Format) ([]panDomain.ValidatedPAN, error) {
	switch format {
	case FormatLines:
		return readLines(r)
	case FormatCSV:
		return readCSV(r)
	case FormatJSON:
		var values []string
		if err := json.NewDecoder(r).Decode(&values); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		pans := make([]panDomain.ValidatedPAN, 0, len(values))
		for _, v := range values {
			pans = append(pans, panDomain.ValidatedPAN(v))
		}
		return pans, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

func readLines(r io.Reader) ([]panDomain.ValidatedPAN, error) {
	pans := make([]panDomain.ValidatedPAN, 0)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pans = append(pans, panDomain.ValidatedPAN(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return pans, nil
}

func readCSV(r io.Reader) ([]panDomain.ValidatedPAN, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []panDomain.ValidatedPAN{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	column := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "pan" {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("%w: missing pan column", ErrPersistenceFailure)
	}

	pans := make([]panDomain.ValidatedPAN, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		if column >= len(row) || row[column] == "" {
			continue
		}
		pans = append(pans, panDomain.ValidatedPAN(row[column]))
	}
	return pans, nil
}
