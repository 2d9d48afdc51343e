package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"name-reconciliation/internal/domain"
)

// SheetName is the worksheet the spreadsheet report is written to.
const SheetName = "Report"

// WriteSpreadsheet writes the tabular columns to an xlsx workbook with the
// summary rows below the entries.
func WriteSpreadsheet(w io.Writer, r *domain.AggregateReport, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Origin", "Name"}
	if opts.ShowSecondaryID {
		header = append(header, "SecondaryId")
	}
	if r.IncludeAmounts {
		header = append(header, "Amount")
	}
	header = append(header, "Status")

	row := 1
	if err := setRow(f, row, header); err != nil {
		return err
	}
	for _, e := range r.Entries {
		row++
		cells := []interface{}{e.Bucket, e.Name}
		if opts.ShowSecondaryID {
			cells = append(cells, idText(e))
		}
		if r.IncludeAmounts {
			cells = append(cells, amountText(e, r, opts.Codec))
		}
		cells = append(cells, e.Status)
		if err := setRow(f, row, cells); err != nil {
			return err
		}
	}

	row++
	for _, line := range summaryRows(r, opts) {
		row++
		if err := setRow(f, row, line); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRows(r *domain.AggregateReport, opts Options) [][]interface{} {
	rows := [][]interface{}{{"Total names found", r.TotalCount}}
	if r.IncludeAmounts {
		rows = append(rows, []interface{}{"Total value", opts.Codec.Format(r.TotalAmount)})
	}
	return rows
}

func setRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
