package matcher

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"name-reconciliation/internal/domain"
)

// PrefixStep records the candidates one prefix selected.
type PrefixStep struct {
	Prefix     string   `json:"prefix"`
	Candidates []string `json:"candidates"`
}

// Suggestion is a reference name close to the query by edit distance.
type Suggestion struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

// Trace describes how a single query was resolved.
type Trace struct {
	Query              string             `json:"query"`
	Mode               string             `json:"mode"`
	Exact              bool               `json:"exact"`
	Prefixes           []PrefixStep       `json:"prefixes,omitempty"`
	Tokens             []string           `json:"tokens,omitempty"`
	FallbackCandidates []string           `json:"fallback_candidates,omitempty"`
	Result             domain.MatchResult `json:"-"`
	Outcome            string             `json:"outcome"`
	Nearest            []Suggestion       `json:"nearest,omitempty"`
}

// Explain resolves q like Resolve and records every stage. The nearest
// reference names are informational and do not influence the result.
func (e *Engine) Explain(q domain.Query, ref *domain.Dataset, nearest int) Trace {
	tr := Trace{Query: q.Name, Mode: e.mode.String()}
	tr.Result = resolve(q.Name, q.Amount, ref, e.mode, &tr)
	tr.Outcome = tr.Result.Status()
	tr.Nearest = Nearest(q.Name, ref, nearest)
	return tr
}

// Nearest returns up to n reference names ordered by Levenshtein distance to
// name, ties broken alphabetically. Comparison ignores case.
func Nearest(name string, ref *domain.Dataset, n int) []Suggestion {
	if n <= 0 || ref.Len() == 0 {
		return nil
	}
	query := strings.ToUpper(name)

	suggestions := make([]Suggestion, 0, ref.Len())
	for _, candidate := range ref.Names() {
		suggestions = append(suggestions, Suggestion{
			Name:     candidate,
			Distance: levenshtein.ComputeDistance(query, strings.ToUpper(candidate)),
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Distance != suggestions[j].Distance {
			return suggestions[i].Distance < suggestions[j].Distance
		}
		return suggestions[i].Name < suggestions[j].Name
	})
	if len(suggestions) > n {
		suggestions = suggestions[:n]
	}
	return suggestions
}
