package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/parser"
	"name-reconciliation/internal/textenc"
)

// FoundLines renders every resolved entry as "<matched name>: <amount>", the
// record grammar a later stage can parse again.
func FoundLines(r *domain.AggregateReport, codec currency.Codec) []string {
	var lines []string
	for _, e := range r.Entries {
		if e.Kind == domain.Unmatched {
			continue
		}
		name := e.MatchedName
		if name == "" {
			name = e.Name
		}
		lines = append(lines, name+": "+codec.FormatNull(e.Amount, Unknown))
	}
	return lines
}

// NotFoundLines renders every unmatched entry as "<query name>: <amount>".
func NotFoundLines(r *domain.AggregateReport, codec currency.Codec) []string {
	var lines []string
	for _, e := range r.Entries {
		if e.Kind != domain.Unmatched {
			continue
		}
		lines = append(lines, e.Name+": "+codec.FormatNull(e.Amount, Unknown))
	}
	return lines
}

// TotalsLine renders the leading totals line.
func TotalsLine(count int, total decimal.Decimal, codec currency.Codec) string {
	return fmt.Sprintf("%s %d names, Value: %s", parser.TotalsPrefix, count, codec.Format(total))
}

// Totals counts the record lines among lines and sums their amounts. Totals
// lines, blank lines and lines without a colon are not counted; a line whose
// amount does not parse counts as a name with no value.
func Totals(lines []string, codec currency.Codec) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), parser.TotalsPrefix) {
			continue
		}
		_, text, ok := parser.SplitLine(line)
		if !ok {
			continue
		}
		count++
		if amount, err := codec.Parse(text); err == nil {
			total = total.Add(amount)
		}
	}
	return count, total
}

// WriteLinesFile writes lines to path headed by their totals line.
func WriteLinesFile(path string, lines []string, codec currency.Codec, enc encoding.Encoding) error {
	count, total := Totals(lines, codec)

	var b strings.Builder
	b.WriteString(TotalsLine(count, total, codec))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	data, err := textenc.Encode([]byte(b.String()), enc)
	if err != nil {
		return &domain.IOFailureError{Path: path, Err: err}
	}
	return WriteFileAtomic(path, data)
}

// UpdateTotalsLine inserts the totals line at the top of an existing file, or
// replaces it when the first line already is one. Other lines are kept as
// they are.
func UpdateTotalsLine(path string, codec currency.Codec, enc encoding.Encoding) (int, decimal.Decimal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, decimal.Zero, &domain.SourceNotFoundError{Path: path, Err: err}
		}
		return 0, decimal.Zero, fmt.Errorf("read %s: %w", path, err)
	}
	content, err := textenc.Decode(raw, enc)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("decode %s: %w", path, err)
	}

	text := string(content)
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	plain := make([]string, len(lines))
	for i, l := range lines {
		plain[i] = strings.TrimRight(l, "\r\n")
	}
	count, total := Totals(plain, codec)
	header := TotalsLine(count, total, codec) + "\n"

	if len(lines) > 0 && strings.HasPrefix(lines[0], parser.TotalsPrefix) {
		lines[0] = header
	} else {
		lines = append([]string{header}, lines...)
	}

	data, err := textenc.Encode([]byte(strings.Join(lines, "")), enc)
	if err != nil {
		return 0, decimal.Zero, &domain.IOFailureError{Path: path, Err: err}
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return 0, decimal.Zero, err
	}
	return count, total, nil
}
