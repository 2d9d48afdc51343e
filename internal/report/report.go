// Package report renders an AggregateReport as tabular CSV, grouped text or
// a spreadsheet, and maintains the "found" line files of chained runs.
package report

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/textenc"
)

// Unknown is printed where an amount or identifier is not known.
const Unknown = "N/A"

// Options controls how a report is rendered.
type Options struct {
	Format          domain.OutputFormat
	Codec           currency.Codec
	ShowSecondaryID bool
	// Encoding applies to text formats; nil means UTF-8.
	Encoding encoding.Encoding
}

// Render writes r to w in the configured format. Text formats are written as
// UTF-8; WriteFile applies the configured encoding.
func Render(w io.Writer, r *domain.AggregateReport, opts Options) error {
	switch opts.Format {
	case domain.FormatTabular:
		return WriteTabular(w, r, opts)
	case domain.FormatGroupedText, "":
		return WriteGrouped(w, r, opts)
	case domain.FormatSpreadsheet:
		return WriteSpreadsheet(w, r, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// WriteFile renders r and replaces path with the result atomically.
func WriteFile(path string, r *domain.AggregateReport, opts Options) error {
	var buf bytes.Buffer
	if err := Render(&buf, r, opts); err != nil {
		return err
	}

	data := buf.Bytes()
	if opts.Format != domain.FormatSpreadsheet {
		encoded, err := textenc.Encode(data, opts.Encoding)
		if err != nil {
			return &domain.IOFailureError{Path: path, Err: err}
		}
		data = encoded
	}
	return WriteFileAtomic(path, data)
}

func summaryLines(r *domain.AggregateReport, codec currency.Codec) []string {
	lines := []string{fmt.Sprintf("Total names found: %d", r.TotalCount)}
	if r.IncludeAmounts {
		lines = append(lines, "Total value: "+codec.Format(r.TotalAmount))
	}
	return lines
}

func amountText(e domain.Entry, r *domain.AggregateReport, codec currency.Codec) string {
	if !r.IncludeAmounts {
		return ""
	}
	return codec.FormatNull(e.Amount, Unknown)
}

func idText(e domain.Entry) string {
	if e.SecondaryID == "" {
		return Unknown
	}
	return e.SecondaryID
}

// FileWriter writes reports and line files to disk with fixed options.
type FileWriter struct {
	opts Options
}

// NewFileWriter creates a FileWriter.
func NewFileWriter(opts Options) *FileWriter {
	return &FileWriter{opts: opts}
}

// WriteReport renders r to path.
func (w *FileWriter) WriteReport(path string, r *domain.AggregateReport) error {
	return WriteFile(path, r, w.opts)
}

// WriteLines writes lines to path headed by their totals line.
func (w *FileWriter) WriteLines(path string, lines []string) error {
	return WriteLinesFile(path, lines, w.opts.Codec, w.opts.Encoding)
}
