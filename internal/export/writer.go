package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	panDomain "github.com/allisson/pangen/internal/pan/domain"
)

var (
	panHeader      = []string{"pan"}
	batchHeader    = []string{"template", "pan"}
	metadataHeader = fieldNames(reflect.TypeFor[MetadataRecord]())
)

// MetadataRecord is the serialized form of a PANMetadata.
type MetadataRecord struct {
	PAN      string `json:"pan"`
	Brand    string `json:"brand"`
	Expiry   string `json:"expiry"`
	CVV      string `json:"cvv"`
	BIN      string `json:"bin"`
	LastFour string `json:"last_four"`
	Issuer   string `json:"issuer"`
	Country  string `json:"country"`
}

// NewMetadataRecord flattens metadata into its serialized form.
func NewMetadataRecord(m *panDomain.PANMetadata) MetadataRecord {
	return MetadataRecord{
		PAN:      m.PAN.String(),
		Brand:    string(m.Brand),
		Expiry:   m.Expiry.String(),
		CVV:      m.CVV,
		BIN:      m.BIN,
		LastFour: m.LastFour,
		Issuer:   m.Issuer,
		Country:  m.Country,
	}
}

// row returns the field values in declaration order, matching metadataHeader.
func (r MetadataRecord) row() []string {
	v := reflect.ValueOf(r)
	values := make([]string, v.NumField())
	for i := range values {
		values[i] = v.Field(i).String()
	}
	return values
}

// fieldNames returns the json names of the fields of struct type t, in declaration order.
func fieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}

// WritePANs writes pans in the given format.
func WritePANs(w io.Writer, format Format, pans []panDomain.ValidatedPAN) error {
	var err error
	switch format {
	case FormatLines:
		err = writeLines(w, pans)
	case FormatCSV:
		rows := make([][]string, 0, len(pans))
		for _, p := range pans {
			rows = append(rows, []string{p.String()})
		}
		err = writeCSV(w, panHeader, rows)
	case FormatJSON:
		err = json.NewEncoder(w).Encode(panDomain.Strings(pans))
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return wrapPersistence(err)
}

// WriteBatch writes a template keyed result. Templates are written in sorted order;
// PANs keep their discovery order.
func WriteBatch(w io.Writer, format Format, result panDomain.BatchResult) error {
	templates := make([]string, 0, len(result))
	for template := range result {
		templates = append(templates, template)
	}
	slices.Sort(templates)

	var err error
	switch format {
	case FormatLines:
		all := make([]panDomain.ValidatedPAN, 0)
		for _, template := range templates {
			all = append(all, result[template]...)
		}
		err = writeLines(w, all)
	case FormatCSV:
		rows := make([][]string, 0)
		for _, template := range templates {
			for _, p := range result[template] {
				rows = append(rows, []string{template, p.String()})
			}
		}
		err = writeCSV(w, batchHeader, rows)
	case FormatJSON:
		out := make(map[string][]string, len(result))
		for template, pans := range result {
			out[template] = panDomain.Strings(pans)
		}
		err = json.NewEncoder(w).Encode(out)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return wrapPersistence(err)
}

// WriteMetadata writes metadata records in the given format. The lines format
// writes only the PANs.
func WriteMetadata(w io.Writer, format Format, records []*panDomain.PANMetadata) error {
	flat := make([]MetadataRecord, 0, len(records))
	for _, m := range records {
		flat = append(flat, NewMetadataRecord(m))
	}

	var err error
	switch format {
	case FormatLines:
		pans := make([]panDomain.ValidatedPAN, 0, len(records))
		for _, m := range records {
			pans = append(pans, m.PAN)
		}
		err = writeLines(w, pans)
	case FormatCSV:
		rows := make([][]string, 0, len(flat))
		for _, r := range flat {
			rows = append(rows, r.row())
		}
		err = writeCSV(w, metadataHeader, rows)
	case FormatJSON:
		err = json.NewEncoder(w).Encode(flat)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	return wrapPersistence(err)
}

func writeLines(w io.Writer, pans []panDomain.ValidatedPAN) error {
	bw := bufio.NewWriter(w)
	for _, p := range pans {
		if _, err := bw.WriteString(p.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func wrapPersistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
}
