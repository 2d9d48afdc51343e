// Package matcher resolves query names against a reference dataset.
//
// Resolution runs three stages and never guesses between candidates:
//  1. exact key lookup;
//  2. prefix widening, accepting the first prefix that selects exactly one
//     reference name;
//  3. token fallback, accepting a reference name only if it is the single one
//     containing every significant token of the query.
//
// Ambiguity at one stage falls through to the next; a query no stage can
// pin down is Unmatched.
package matcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/domain"
)

// Engine resolves queries under a fixed mode. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	mode domain.Mode
}

// NewEngine creates an engine for the given mode.
func NewEngine(mode domain.Mode) *Engine {
	return &Engine{mode: mode}
}

// Mode returns the engine's matching mode.
func (e *Engine) Mode() domain.Mode {
	return e.mode
}

// Resolve resolves a single query against ref.
func (e *Engine) Resolve(q domain.Query, ref *domain.Dataset) domain.MatchResult {
	return resolve(q.Name, q.Amount, ref, e.mode, nil)
}

// Resolve is the functional form of Engine.Resolve.
func Resolve(name string, amount decimal.NullDecimal, ref *domain.Dataset, mode domain.Mode) domain.MatchResult {
	return resolve(name, amount, ref, mode, nil)
}

func resolve(name string, amount decimal.NullDecimal, ref *domain.Dataset, mode domain.Mode, tr *Trace) domain.MatchResult {
	result := domain.MatchResult{Kind: domain.Unmatched, Query: name, Amount: amount}
	if strings.TrimSpace(name) == "" || ref.Len() == 0 {
		return result
	}

	if r, ok := ref.Get(name); ok && amountAccepted(mode, amount, r) {
		if tr != nil {
			tr.Exact = true
		}
		return matched(result, domain.Exact, r)
	}

	records := ref.Records()

	for _, prefix := range Prefixes(name) {
		var candidates []domain.Record
		for _, r := range records {
			if strings.HasPrefix(r.Name, prefix) && amountAccepted(mode, amount, r) {
				candidates = append(candidates, r)
			}
		}
		if tr != nil {
			tr.Prefixes = append(tr.Prefixes, PrefixStep{Prefix: prefix, Candidates: names(candidates)})
		}
		if len(candidates) == 1 {
			return matched(result, domain.PartialUnique, candidates[0])
		}
	}

	tokens := significantTokens(name)
	if tr != nil {
		tr.Tokens = tokens
	}
	if len(tokens) == 0 {
		return result
	}

	var candidates []domain.Record
	for _, r := range records {
		if containsAll(strings.ToLower(r.Name), tokens) && amountAccepted(mode, amount, r) {
			candidates = append(candidates, r)
		}
	}
	if tr != nil {
		tr.FallbackCandidates = names(candidates)
	}
	if len(candidates) == 1 {
		return matched(result, domain.TokenFallback, candidates[0])
	}
	return result
}

// amountAccepted reports whether r satisfies the mode's amount constraint.
// An unknown amount on either side never equals anything.
func amountAccepted(mode domain.Mode, amount decimal.NullDecimal, r domain.Record) bool {
	if mode == domain.ModeNameOnly {
		return true
	}
	return amount.Valid && r.Amount.Valid && amount.Decimal.Equal(r.Amount.Decimal)
}

func matched(result domain.MatchResult, kind domain.MatchKind, r domain.Record) domain.MatchResult {
	result.Kind = kind
	result.MatchedName = r.Name
	result.Record = r
	return result
}

func containsAll(s string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

func names(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
