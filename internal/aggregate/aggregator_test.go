package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"name-reconciliation/internal/domain"
)

func amt(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func exact(name, origin, amount, id string) domain.MatchResult {
	return domain.MatchResult{
		Kind:        domain.Exact,
		Query:       name,
		MatchedName: name,
		Record:      domain.Record{Name: name, Origin: origin, Amount: amt(amount), SecondaryID: id},
	}
}

func TestAggregator_GroupsInFirstSeenOrder(t *testing.T) {
	a := New(true)

	a.AddResult(exact("JOAO SILVA", "Projeto B - jan.pdf", "10.00", "111"))
	a.AddResult(domain.MatchResult{Kind: domain.Unmatched, Query: "NOBODY"})
	a.AddResult(exact("ANA COSTA", "Projeto A.pdf", "5.50", ""))
	a.AddResult(domain.MatchResult{
		Kind:        domain.PartialUnique,
		Query:       "MARIA JOSE",
		MatchedName: "MARIA JOSE SOUZA",
		Record:      domain.Record{Name: "MARIA JOSE SOUZA", Origin: "Projeto B - fev.pdf", Amount: amt("2.50")},
	})

	r := a.Report()

	require.Len(t, r.Buckets, 3)
	assert.Equal(t, "Projeto B", r.Buckets[0].Label)
	assert.Equal(t, domain.NotFoundBucket, r.Buckets[1].Label)
	assert.Equal(t, "Projeto A.pdf", r.Buckets[2].Label)

	require.Len(t, r.Buckets[0].Entries, 2)
	assert.Equal(t, "JOAO SILVA", r.Buckets[0].Entries[0].Name)
	assert.Equal(t, "Partial - Found as: MARIA JOSE SOUZA", r.Buckets[0].Entries[1].Status)

	assert.Equal(t, 4, r.TotalCount)
	assert.True(t, r.TotalAmount.Equal(decimal.RequireFromString("18")), r.TotalAmount.String())
	assert.Equal(t, domain.OutcomeCounts{Exact: 2, Partial: 1, Unmatched: 1}, r.Outcomes)

	names := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"JOAO SILVA", "NOBODY", "ANA COSTA", "MARIA JOSE"}, names)
}

func TestAggregator_IdempotentDuplicates(t *testing.T) {
	a := New(true)
	res := exact("JOAO SILVA", "A.pdf", "10.00", "111")

	assert.True(t, a.AddResult(res))
	once := a.Report()

	assert.False(t, a.AddResult(res))
	twice := a.Report()

	assert.Equal(t, once.TotalCount, twice.TotalCount)
	assert.True(t, once.TotalAmount.Equal(twice.TotalAmount))
	assert.Len(t, twice.Entries, 1)
}

func TestAggregator_SameNameDifferentAmountIsKept(t *testing.T) {
	a := New(true)
	a.AddResult(exact("JOAO SILVA", "A.pdf", "10.00", ""))
	a.AddResult(exact("JOAO SILVA", "A.pdf", "11.00", ""))

	assert.Equal(t, 2, a.Report().TotalCount)
}

func TestAggregator_WithoutAmounts(t *testing.T) {
	a := New(false)
	a.AddResult(exact("JOAO SILVA", "A.pdf", "10.00", ""))
	a.AddResult(exact("JOAO SILVA", "A.pdf", "11.00", ""))

	r := a.Report()

	assert.Equal(t, 1, r.TotalCount, "amounts do not distinguish entries when omitted")
	assert.True(t, r.TotalAmount.IsZero())
	assert.True(t, r.Entries[0].Amount.Decimal.Equal(decimal.RequireFromString("10")), "the first resolved amount is kept for the found lists")
	assert.False(t, r.IncludeAmounts)
}

func TestAggregator_QueryAmountPreferred(t *testing.T) {
	a := New(true)
	res := exact("JOAO SILVA", "A.pdf", "10.00", "")
	res.Amount = amt("9.00")

	a.AddResult(res)

	assert.True(t, a.Report().TotalAmount.Equal(decimal.RequireFromString("9")))
}

func TestAggregator_ReportIsSnapshot(t *testing.T) {
	a := New(true)
	a.AddResult(exact("A B", "x", "1", ""))
	snap := a.Report()
	a.AddResult(exact("C D", "x", "1", ""))

	assert.Len(t, snap.Entries, 1)
	assert.Len(t, snap.Buckets[0].Entries, 1)
}

func TestBucketLabel(t *testing.T) {
	assert.Equal(t, "Projeto X", BucketLabel("Projeto X - 2024-01.pdf"))
	assert.Equal(t, "Projeto Y", BucketLabel("Projeto  Y - a - b"))
	assert.Equal(t, UnknownBucket, BucketLabel(""))
	assert.Equal(t, domain.NotFoundBucket, BucketFor(domain.MatchResult{Query: "X"}))
}
