package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects whether a match must also agree on the amount.
type Mode int

const (
	// ModeNameOnly accepts a match on name correspondence alone.
	ModeNameOnly Mode = iota
	// ModeNameAndAmount additionally requires equal amounts.
	ModeNameAndAmount
)

func (m Mode) String() string {
	switch m {
	case ModeNameOnly:
		return "name-only"
	case ModeNameAndAmount:
		return "name-and-amount"
	default:
		return "unknown"
	}
}

// ParseMode parses the configuration spelling of a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name-only", "name_only", "nameonly":
		return ModeNameOnly, nil
	case "name-and-amount", "name_and_amount", "nameandamountequal", "value":
		return ModeNameAndAmount, nil
	default:
		return ModeNameOnly, fmt.Errorf("unknown match mode %q", s)
	}
}

// MatchKind tags the outcome of resolving one query.
type MatchKind int

const (
	Unmatched MatchKind = iota
	Exact
	PartialUnique
	TokenFallback
)

func (k MatchKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case PartialUnique:
		return "partial"
	case TokenFallback:
		return "fallback"
	default:
		return "unmatched"
	}
}

// NotFoundBucket is the bucket unmatched queries are filed under.
const NotFoundBucket = "Not Found"

// MatchResult is the outcome of resolving one query name.
// MatchedName and Record are zero when Kind is Unmatched.
type MatchResult struct {
	Kind        MatchKind
	Query       string
	Amount      decimal.NullDecimal
	MatchedName string
	Record      Record
}

// Resolved reports whether any stage produced a match.
func (r MatchResult) Resolved() bool {
	return r.Kind != Unmatched
}

// Status renders the report status text for the result.
func (r MatchResult) Status() string {
	switch r.Kind {
	case Exact:
		return "Complete"
	case PartialUnique:
		return "Partial - Found as: " + r.MatchedName
	case TokenFallback:
		return "Fallback - Found as: " + r.MatchedName
	default:
		return "Not found"
	}
}
