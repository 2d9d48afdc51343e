package report

import (
	"bufio"
	"io"

	"name-reconciliation/internal/domain"
)

// WriteGrouped writes one block per bucket:
//
//	Label:
//	- NAME - Id: 123 - 1.234,56
//	    - Complete
//
// Blocks are separated by a blank line and followed by the run summary.
func WriteGrouped(w io.Writer, r *domain.AggregateReport, opts Options) error {
	bw := bufio.NewWriter(w)

	for _, b := range r.Buckets {
		bw.WriteString(b.Label + ":\n")
		for _, e := range b.Entries {
			bw.WriteString("- " + e.Name)
			if opts.ShowSecondaryID {
				bw.WriteString(" - Id: " + idText(e))
			}
			if r.IncludeAmounts {
				bw.WriteString(" - " + amountText(e, r, opts.Codec))
			}
			bw.WriteString("\n    - " + e.Status + "\n")
		}
		bw.WriteString("\n")
	}

	for _, line := range summaryLines(r, opts.Codec) {
		bw.WriteString(line)
		bw.WriteString("\n")
	}
	return bw.Flush()
}
