package commands

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/allisson/pangen/internal/export"
	panDomain "github.com/allisson/pangen/internal/pan/domain"
	"github.com/allisson/pangen/internal/pan/http/dto"
)

// Output decides where and how generated PANs are written. When Key is set the
// result is stored in the export bucket under Key and only a summary goes to Writer.
type Output struct {
	Writer   io.Writer
	Format   string
	Key      string
	Exporter export.Exporter
}

func (o Output) validate() error {
	switch o.Format {
	case FormatText, FormatJSON, FormatCSV, FormatLines:
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json, csv, lines)", o.Format)
	}
	if o.Key != "" && o.Exporter == nil {
		return fmt.Errorf("an exporter is required to store output under %q", o.Key)
	}
	return nil
}

// exportFormat maps a CLI format onto a file format; text is stored as lines.
func (o Output) exportFormat() export.Format {
	if o.Format == FormatText {
		return export.FormatLines
	}
	return export.Format(o.Format)
}

// store writes the export to the bucket and prints a summary.
func (o Output) store(ctx context.Context, count int, write func(io.Writer, export.Format) error) error {
	format := o.exportFormat()
	err := o.Exporter.Export(ctx, o.Key, format, func(w io.Writer) error {
		return write(w, format)
	})
	if err != nil {
		return fmt.Errorf("failed to store export: %w", err)
	}
	_, err = fmt.Fprintf(o.Writer, "Stored %d PAN(s) as %s at %s\n", count, format, o.Key)
	return err
}

func (o Output) pans(ctx context.Context, template string, pans []panDomain.ValidatedPAN) error {
	if o.Key != "" {
		return o.store(ctx, len(pans), func(w io.Writer, f export.Format) error {
			return export.WritePANs(w, f, pans)
		})
	}

	switch o.Format {
	case FormatJSON:
		return writeJSON(o.Writer, dto.MapPANsToResponse(template, pans))
	case FormatText:
		if _, err := fmt.Fprintf(o.Writer, "Generated %d PAN(s) for %s\n", len(pans), template); err != nil {
			return err
		}
		for _, pan := range pans {
			if _, err := fmt.Fprintf(o.Writer, "  %s\n", pan); err != nil {
				return err
			}
		}
		return nil
	default:
		return export.WritePANs(o.Writer, export.Format(o.Format), pans)
	}
}

func (o Output) batch(ctx context.Context, result panDomain.BatchResult, partial bool) error {
	total := 0
	for _, pans := range result {
		total += len(pans)
	}

	if o.Key != "" {
		return o.store(ctx, total, func(w io.Writer, f export.Format) error {
			return export.WriteBatch(w, f, result)
		})
	}

	switch o.Format {
	case FormatJSON:
		return writeJSON(o.Writer, dto.MapBatchResultToResponse(result, partial))
	case FormatText:
		templates := make([]string, 0, len(result))
		for template := range result {
			templates = append(templates, template)
		}
		slices.Sort(templates)

		for _, template := range templates {
			if _, err := fmt.Fprintf(o.Writer, "%s (%d)\n", template, len(result[template])); err != nil {
				return err
			}
			for _, pan := range result[template] {
				if _, err := fmt.Fprintf(o.Writer, "  %s\n", pan); err != nil {
					return err
				}
			}
		}
		if partial {
			_, err := fmt.Fprintln(o.Writer, "Deadline reached: result is partial")
			return err
		}
		return nil
	default:
		return export.WriteBatch(o.Writer, export.Format(o.Format), result)
	}
}

func (o Output) metadata(ctx context.Context, records []*panDomain.PANMetadata, batchID *uuid.UUID) error {
	if o.Key != "" {
		err := o.store(ctx, len(records), func(w io.Writer, f export.Format) error {
			return export.WriteMetadata(w, f, records)
		})
		if err != nil || batchID == nil {
			return err
		}
		_, err = fmt.Fprintf(o.Writer, "Batch ID: %s\n", batchID)
		return err
	}

	switch o.Format {
	case FormatJSON:
		var id *string
		if batchID != nil {
			s := batchID.String()
			id = &s
		}
		return writeJSON(o.Writer, dto.MapMetadataToResponse(records, id))
	case FormatText:
		tw := tabwriter.NewWriter(o.Writer, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "PAN\tBRAND\tEXPIRY\tCVV\tISSUER\tCOUNTRY")
		for _, m := range records {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.PAN, m.Brand, m.Expiry, m.CVV, m.Issuer, m.Country)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if batchID != nil {
			_, err := fmt.Fprintf(o.Writer, "Batch ID: %s\n", batchID)
			return err
		}
		return nil
	default:
		return export.WriteMetadata(o.Writer, export.Format(o.Format), records)
	}
}
