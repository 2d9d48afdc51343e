package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
)

// DefaultExtractPattern matches payroll lines of the form
// " - NAME 000.000.000-00 ... 1.234,56" in extracted document text.
const DefaultExtractPattern = ` - (?P<name>[A-ZÀ-Ú ]+)\s+(?P<id>\d{3}\.\d{3}\.\d{3}-\d{2}).*?(?P<amount>\d{1,3}(?:\.\d{3})*,\d{2})`

// Extractor pulls records out of free text with a regular expression that has
// the named groups "name" and "amount", and optionally "id".
type Extractor struct {
	re        *regexp.Regexp
	codec     currency.Codec
	nameIdx   int
	amountIdx int
	idIdx     int
}

// NewExtractor compiles pattern, falling back to DefaultExtractPattern when
// it is empty.
func NewExtractor(pattern string, codec currency.Codec) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultExtractPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid extract pattern: %w", err)
	}
	e := &Extractor{
		re:        re,
		codec:     codec,
		nameIdx:   re.SubexpIndex("name"),
		amountIdx: re.SubexpIndex("amount"),
		idIdx:     re.SubexpIndex("id"),
	}
	if e.nameIdx < 0 || e.amountIdx < 0 {
		return nil, fmt.Errorf("extract pattern must define the named groups name and amount")
	}
	return e, nil
}

// Extract scans text and builds a dataset tagged with origin. Matches whose
// amount fails to parse are counted and skipped.
func (e *Extractor) Extract(origin, text string) (*domain.Dataset, Stats) {
	ds := domain.NewDataset(origin)
	var stats Stats

	for _, m := range e.re.FindAllStringSubmatch(text, -1) {
		stats.Lines++
		name := strings.TrimSpace(m[e.nameIdx])
		if name == "" {
			stats.Skipped++
			continue
		}
		amount, err := e.codec.Parse(m[e.amountIdx])
		if err != nil {
			stats.UnknownValue++
			stats.Warnings = append(stats.Warnings, fmt.Errorf("%s: %w", name, err))
			continue
		}
		r := domain.Record{Name: name, Amount: decimal.NewNullDecimal(amount)}
		if e.idIdx >= 0 {
			r.SecondaryID = m[e.idIdx]
		}
		ds.Put(r)
		stats.Records++
	}
	return ds, stats
}
