// Package aggregate collects match results into a deduplicated report
// grouped by bucket.
package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/domain"
)

// UnknownBucket labels resolved records that carry no origin.
const UnknownBucket = "Unknown"

type entryKey struct {
	bucket string
	name   string
	id     string
	amount string
	status string
}

// Aggregator retains each distinct (bucket, name, id, amount, status) once,
// in first-seen order, and keeps running totals.
type Aggregator struct {
	includeAmounts bool
	seen           map[entryKey]struct{}
	bucketIdx      map[string]int
	report         domain.AggregateReport
}

// New creates an Aggregator. Entries always carry their resolved amount so
// the found lists stay parseable; with includeAmounts off, amounts neither
// distinguish entries nor count towards the total, and reports hide them.
func New(includeAmounts bool) *Aggregator {
	return &Aggregator{
		includeAmounts: includeAmounts,
		seen:           make(map[entryKey]struct{}),
		bucketIdx:      make(map[string]int),
		report: domain.AggregateReport{
			Entries:        make([]domain.Entry, 0),
			Buckets:        make([]domain.Bucket, 0),
			TotalAmount:    decimal.Zero,
			IncludeAmounts: includeAmounts,
		},
	}
}

// AddResult files res under the bucket derived from its resolved record.
func (a *Aggregator) AddResult(res domain.MatchResult) bool {
	return a.Add(BucketFor(res), res)
}

// Add files res under bucket. It reports whether the entry was new.
func (a *Aggregator) Add(bucket string, res domain.MatchResult) bool {
	entry := domain.Entry{
		Bucket:      bucket,
		Name:        res.Query,
		SecondaryID: res.Record.SecondaryID,
		Status:      res.Status(),
		Kind:        res.Kind,
		MatchedName: res.MatchedName,
		Amount:      EntryAmount(res),
	}

	key := entryKey{
		bucket: entry.Bucket,
		name:   entry.Name,
		id:     entry.SecondaryID,
		status: entry.Status,
	}
	if a.includeAmounts && entry.Amount.Valid {
		key.amount = entry.Amount.Decimal.StringFixed(2)
	}
	if _, dup := a.seen[key]; dup {
		return false
	}
	a.seen[key] = struct{}{}

	idx, ok := a.bucketIdx[bucket]
	if !ok {
		idx = len(a.report.Buckets)
		a.bucketIdx[bucket] = idx
		a.report.Buckets = append(a.report.Buckets, domain.Bucket{Label: bucket})
	}
	a.report.Buckets[idx].Entries = append(a.report.Buckets[idx].Entries, entry)
	a.report.Entries = append(a.report.Entries, entry)

	a.report.TotalCount++
	if a.includeAmounts && entry.Amount.Valid {
		a.report.TotalAmount = a.report.TotalAmount.Add(entry.Amount.Decimal)
	}
	switch entry.Kind {
	case domain.Exact:
		a.report.Outcomes.Exact++
	case domain.PartialUnique:
		a.report.Outcomes.Partial++
	case domain.TokenFallback:
		a.report.Outcomes.Fallback++
	default:
		a.report.Outcomes.Unmatched++
	}
	return true
}

// Report returns a snapshot of the aggregate built so far.
func (a *Aggregator) Report() *domain.AggregateReport {
	out := a.report
	out.Entries = append(make([]domain.Entry, 0, len(a.report.Entries)), a.report.Entries...)
	out.Buckets = make([]domain.Bucket, len(a.report.Buckets))
	for i, b := range a.report.Buckets {
		out.Buckets[i] = domain.Bucket{
			Label:   b.Label,
			Entries: append([]domain.Entry(nil), b.Entries...),
		}
	}
	return &out
}

// BucketFor returns the bucket a result is filed under: the label of the
// resolved record's origin, or domain.NotFoundBucket when unmatched.
func BucketFor(res domain.MatchResult) string {
	if !res.Resolved() {
		return domain.NotFoundBucket
	}
	return BucketLabel(res.Record.Origin)
}

// BucketLabel shortens an origin such as "Projeto X - 2024-01.pdf" to the text
// before the first " - ", with doubled spaces collapsed.
func BucketLabel(origin string) string {
	label, _, _ := strings.Cut(origin, " - ")
	label = strings.ReplaceAll(label, "  ", " ")
	label = strings.TrimSpace(label)
	if label == "" {
		return UnknownBucket
	}
	return label
}

// EntryAmount is the amount reported for res: the query's own amount when
// known, otherwise the resolved record's.
func EntryAmount(res domain.MatchResult) decimal.NullDecimal {
	if res.Amount.Valid {
		return res.Amount
	}
	if res.Resolved() {
		return res.Record.Amount
	}
	return decimal.NullDecimal{}
}
