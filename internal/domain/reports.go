package domain

import "github.com/shopspring/decimal"

// Entry is one retained line of an aggregate report.
type Entry struct {
	Bucket      string              `json:"bucket"`
	Name        string              `json:"name"`
	SecondaryID string              `json:"secondary_id,omitempty"`
	Amount      decimal.NullDecimal `json:"amount"`
	Status      string              `json:"status"`
	Kind        MatchKind           `json:"-"`
	MatchedName string              `json:"matched_name,omitempty"`
}

// Bucket groups entries under one label for the grouped text report.
type Bucket struct {
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// OutcomeCounts tallies retained entries by match kind.
type OutcomeCounts struct {
	Exact     int `json:"exact"`
	Partial   int `json:"partial"`
	Fallback  int `json:"fallback"`
	Unmatched int `json:"unmatched"`
}

// AggregateReport is the deduplicated, grouped result of one run.
type AggregateReport struct {
	RunID          string          `json:"run_id,omitempty"`
	Entries        []Entry         `json:"entries"`
	Buckets        []Bucket        `json:"buckets"`
	TotalCount     int             `json:"total_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	IncludeAmounts bool            `json:"include_amounts"`
	Outcomes       OutcomeCounts   `json:"outcomes"`
}
