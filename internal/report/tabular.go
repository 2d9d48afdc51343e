package report

import (
	"bufio"
	"io"
	"strings"

	"name-reconciliation/internal/domain"
)

const tabularDelimiter = ";"

// WriteTabular writes one quoted, semicolon separated row per entry with a
// header row, followed by a blank line and the run summary. The Amount column
// is left out when the report omits amounts.
func WriteTabular(w io.Writer, r *domain.AggregateReport, opts Options) error {
	bw := bufio.NewWriter(w)

	header := []string{"Origin", "Name"}
	if opts.ShowSecondaryID {
		header = append(header, "SecondaryId")
	}
	if r.IncludeAmounts {
		header = append(header, "Amount")
	}
	header = append(header, "Status")
	writeRow(bw, header)

	for _, e := range r.Entries {
		row := []string{e.Bucket, e.Name}
		if opts.ShowSecondaryID {
			row = append(row, idText(e))
		}
		if r.IncludeAmounts {
			row = append(row, amountText(e, r, opts.Codec))
		}
		row = append(row, e.Status)
		writeRow(bw, row)
	}

	bw.WriteString("\n")
	for _, line := range summaryLines(r, opts.Codec) {
		bw.WriteString(line)
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteString(tabularDelimiter)
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\n")
}
