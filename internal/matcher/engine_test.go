package matcher

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"name-reconciliation/internal/domain"
)

func amt(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func dataset(origin string, pairs ...string) *domain.Dataset {
	ds := domain.NewDataset(origin)
	for i := 0; i+1 < len(pairs); i += 2 {
		ds.Put(domain.Record{Name: pairs[i], Amount: amt(pairs[i+1])})
	}
	return ds
}

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		ref         *domain.Dataset
		query       string
		amount      decimal.NullDecimal
		mode        domain.Mode
		wantKind    domain.MatchKind
		wantMatched string
	}{
		{
			name:        "exact with equal amount",
			ref:         dataset("pagos", "JOAO SILVA", "1234.56"),
			query:       "JOAO SILVA",
			amount:      amt("1234.56"),
			mode:        domain.ModeNameAndAmount,
			wantKind:    domain.Exact,
			wantMatched: "JOAO SILVA",
		},
		{
			name:        "partial on first token",
			ref:         dataset("pagos", "JOAO DA SILVA SANTOS", "500.00"),
			query:       "JOAO SANTOS",
			mode:        domain.ModeNameOnly,
			wantKind:    domain.PartialUnique,
			wantMatched: "JOAO DA SILVA SANTOS",
		},
		{
			name:     "ambiguous first token and no fallback",
			ref:      dataset("pagos", "ANA PEREIRA", "10.00", "ANA SILVA", "20.00"),
			query:    "ANA COSTA",
			mode:     domain.ModeNameOnly,
			wantKind: domain.Unmatched,
		},
		{
			name:        "ambiguity resolved by longer prefix",
			ref:         dataset("pagos", "ANA PEREIRA LIMA", "10.00", "ANA SILVA", "20.00"),
			query:       "ANA PEREIRA",
			mode:        domain.ModeNameOnly,
			wantKind:    domain.PartialUnique,
			wantMatched: "ANA PEREIRA LIMA",
		},
		{
			name:        "middle initial heuristic",
			ref:         dataset("pagos", "MARIA S COSTA", "10.00", "MARIA LUIZA", "20.00"),
			query:       "MARIA SOUZA COSTA",
			mode:        domain.ModeNameOnly,
			wantKind:    domain.PartialUnique,
			wantMatched: "MARIA S COSTA",
		},
		{
			name:        "token fallback",
			ref:         dataset("pagos", "PEDRO HENRIQUE LIMA", "10.00", "PEDRO ALVES", "20.00"),
			query:       "PEDRO LIMA",
			mode:        domain.ModeNameOnly,
			wantKind:    domain.TokenFallback,
			wantMatched: "PEDRO HENRIQUE LIMA",
		},
		{
			name:     "token fallback ambiguous",
			ref:      dataset("pagos", "PEDRO HENRIQUE LIMA", "10.00", "PEDRO LIMA ALVES", "20.00", "PEDRO CRUZ", "1"),
			query:    "PEDRO X LIMA",
			mode:     domain.ModeNameOnly,
			wantKind: domain.Unmatched,
		},
		{
			name:        "token fallback ignores short tokens",
			ref:         dataset("pagos", "SILVA JOAO", "10.00", "JOAO PEDRO", "20.00"),
			query:       "DE SILVA JO",
			mode:        domain.ModeNameOnly,
			wantKind:    domain.TokenFallback,
			wantMatched: "SILVA JOAO",
		},
		{
			name:     "value mode rejects exact with different amount",
			ref:      dataset("pagos", "JOAO SILVA", "10.00"),
			query:    "JOAO SILVA",
			amount:   amt("11.00"),
			mode:     domain.ModeNameAndAmount,
			wantKind: domain.Unmatched,
		},
		{
			name:        "value mode narrows prefix candidates by amount",
			ref:         dataset("pagos", "JOAO SILVA", "10.00", "JOAO SOUZA", "20.00"),
			query:       "JOAO SANTOS",
			amount:      amt("20"),
			mode:        domain.ModeNameAndAmount,
			wantKind:    domain.PartialUnique,
			wantMatched: "JOAO SOUZA",
		},
		{
			name:     "value mode with unknown query amount",
			ref:      dataset("pagos", "JOAO SILVA", "10.00"),
			query:    "JOAO SILVA",
			mode:     domain.ModeNameAndAmount,
			wantKind: domain.Unmatched,
		},
		{
			name:     "empty query",
			ref:      dataset("pagos", "JOAO SILVA", "10.00"),
			query:    "",
			mode:     domain.ModeNameOnly,
			wantKind: domain.Unmatched,
		},
		{
			name:     "empty reference",
			ref:      domain.NewDataset("empty"),
			query:    "JOAO SILVA",
			mode:     domain.ModeNameOnly,
			wantKind: domain.Unmatched,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.query, tt.amount, tt.ref, tt.mode)

			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMatched, got.MatchedName)
			assert.Equal(t, tt.query, got.Query)
			if tt.wantKind != domain.Unmatched {
				assert.Equal(t, tt.wantMatched, got.Record.Name)
				assert.Equal(t, "pagos", got.Record.Origin)
			}
		})
	}
}

func TestResolve_ExactReflexivity(t *testing.T) {
	ref := dataset("ref",
		"ANA PEREIRA", "10.00",
		"ANA PEREIRA LIMA", "10.00",
		"ANA", "3.50",
		"JOSÉ DA SILVA", "1234.56",
		"JOSÉ DA SILVA FILHO", "1234.56",
	)

	for _, r := range ref.Records() {
		got := Resolve(r.Name, r.Amount, ref, domain.ModeNameAndAmount)
		assert.Equal(t, domain.Exact, got.Kind, r.Name)
		assert.Equal(t, r.Name, got.MatchedName)
	}
}

func TestResolve_NeverPicksAmongSharedPrefix(t *testing.T) {
	ref := dataset("ref", "CARLOS EDUARDO", "1", "CARLOS ALBERTO", "2")

	// "CARLOS" selects both names and no longer prefix of the query selects either.
	got := Resolve("CARLOS MENDES", decimal.NullDecimal{}, ref, domain.ModeNameOnly)
	assert.NotEqual(t, domain.PartialUnique, got.Kind)
	assert.Equal(t, domain.Unmatched, got.Kind)
}

func TestEngine_Resolve(t *testing.T) {
	e := NewEngine(domain.ModeNameAndAmount)
	ref := dataset("ref", "JOAO SILVA", "1234.56")

	got := e.Resolve(domain.Query{Name: "JOAO SILVA", Amount: amt("1234.56")}, ref)

	assert.Equal(t, domain.Exact, got.Kind)
	assert.Equal(t, domain.ModeNameAndAmount, e.Mode())
	assert.True(t, got.Amount.Decimal.Equal(decimal.RequireFromString("1234.56")))
}
