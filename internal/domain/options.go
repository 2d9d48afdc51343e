package domain

import (
	"fmt"
	"strings"
)

// OutputFormat selects the report writer.
type OutputFormat string

const (
	FormatTabular     OutputFormat = "tabular"
	FormatGroupedText OutputFormat = "grouped"
	FormatSpreadsheet OutputFormat = "xlsx"
)

// ParseOutputFormat validates a configured output format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTabular, FormatGroupedText, FormatSpreadsheet:
		return f, nil
	case "csv":
		return FormatTabular, nil
	case "text", "txt":
		return FormatGroupedText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options is the explicit per-run configuration.
type Options struct {
	Mode           Mode
	IncludeAmounts bool
	OutputFormat   OutputFormat
	// ShowSecondaryID adds the identifier column to reports; set when the
	// reference side carries identifiers.
	ShowSecondaryID bool
}

// Extension returns the conventional file extension for the format.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatTabular:
		return ".csv"
	case FormatSpreadsheet:
		return ".xlsx"
	default:
		return ".txt"
	}
}
