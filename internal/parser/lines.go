// Package parser turns raw text lines and extracted document text into
// datasets.
package parser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
)

// TotalsPrefix marks the leading totals line written on top of reports.
const TotalsPrefix = "Total:"

var lineRe = regexp.MustCompile(`^(.+?):\s*(.*)$`)

// Stats counts what a parse pass saw. Warnings holds the recoverable
// *domain.ParseError and *domain.FormatError values in line order.
type Stats struct {
	Lines        int
	Records      int
	UnknownValue int
	Skipped      int
	Warnings     []error
}

// Names is the number of names found, with or without a usable amount.
func (s Stats) Names() int {
	return s.Records + s.UnknownValue
}

// Parser reads the colon grammar using a currency codec for amounts.
type Parser struct {
	codec currency.Codec
}

// New creates a Parser.
func New(codec currency.Codec) *Parser {
	return &Parser{codec: codec}
}

// ParseLines builds a dataset from "<name>: <amount>" lines. Lines without a
// colon are skipped as parse errors; lines whose amount does not parse are
// kept as names of unknown value with a null amount and reported as format
// errors. Blank lines and totals lines are ignored.
func (p *Parser) ParseLines(origin string, lines []string, progress domain.ProgressFunc) (*domain.Dataset, Stats) {
	ds := domain.NewDataset(origin)
	stats := Stats{Lines: len(lines)}
	tracker := domain.NewProgress(progress, len(lines))

	for i, raw := range lines {
		p.parseLine(ds, &stats, i+1, raw)
		tracker.Step(i + 1)
	}
	tracker.Done()
	return ds, stats
}

func (p *Parser) parseLine(ds *domain.Dataset, stats *Stats, lineNum int, raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, TotalsPrefix) {
		stats.Skipped++
		return
	}

	name, text, ok := SplitLine(line)
	if !ok {
		stats.Skipped++
		stats.Warnings = append(stats.Warnings, &domain.ParseError{Line: lineNum, Text: line})
		return
	}

	amount, err := p.codec.Parse(text)
	if err != nil {
		stats.UnknownValue++
		stats.Warnings = append(stats.Warnings, fmt.Errorf("line %d: %w", lineNum, err))
		ds.Put(domain.Record{Name: name})
		return
	}

	ds.Put(domain.Record{Name: name, Amount: decimal.NewNullDecimal(amount)})
	stats.Records++
}

// SplitLine splits a "<name>: <amount>" line at its first colon. It reports
// false when the line has no colon or an empty name.
func SplitLine(line string) (name, amount string, ok bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSpace(m[1])
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(m[2]), true
}

// ParseReader reads all lines of r and parses them with ParseLines.
func (p *Parser) ParseReader(origin string, r io.Reader, progress domain.ProgressFunc) (*domain.Dataset, Stats, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, Stats{}, err
	}
	ds, stats := p.ParseLines(origin, lines, progress)
	return ds, stats, nil
}

// ReadLines splits r into lines without their terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
