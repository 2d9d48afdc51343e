package gateway

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"name-reconciliation/internal/domain"
)

func amt(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func sampleSets() []*domain.Dataset {
	b := domain.NewDataset("Projeto B - fev.pdf")
	b.Put(domain.Record{Name: "ZECA", Amount: amt("1234.56"), SecondaryID: "111.222.333-44"})
	b.Put(domain.Record{Name: "ANA", Amount: amt("10")})
	b.Put(domain.Record{Name: "SEM VALOR"})

	a := domain.NewDataset("Projeto A - jan.pdf")
	a.Put(domain.Record{Name: "JOAO", Amount: amt("0.5")})
	return []*domain.Dataset{b, a}
}

func assertSameSets(t *testing.T, want, got []*domain.Dataset) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Origin, got[i].Origin)
		assert.Equal(t, want[i].Names(), got[i].Names())
		for _, w := range want[i].Records() {
			g, ok := got[i].Get(w.Name)
			require.True(t, ok, w.Name)
			assert.Equal(t, w.SecondaryID, g.SecondaryID)
			assert.Equal(t, w.Origin, g.Origin)
			assert.Equal(t, w.Amount.Valid, g.Amount.Valid, w.Name)
			if w.Amount.Valid {
				assert.True(t, w.Amount.Decimal.Equal(g.Amount.Decimal), w.Name)
			}
		}
	}
}

func TestJSONStore_SaveLoad(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSets()))
	got, err := store.Load(ctx)

	require.NoError(t, err)
	assertSameSets(t, sampleSets(), got)
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))

	got, err := store.Load(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONStore_LoadLayouts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, sets []*domain.Dataset)
		wantErr bool
	}{
		{
			name:    "record objects",
			content: `{"doc.pdf": {"JOAO SILVA": {"cpf": "123.456.789-10", "valor": 100.0}}}`,
			check: func(t *testing.T, sets []*domain.Dataset) {
				r, ok := sets[0].Get("JOAO SILVA")
				require.True(t, ok)
				assert.Equal(t, "123.456.789-10", r.SecondaryID)
				assert.True(t, r.Amount.Decimal.Equal(decimal.NewFromInt(100)))
				assert.Equal(t, "doc.pdf", r.Origin)
			},
		},
		{
			name:    "bare numbers",
			content: `{"doc.pdf": {"MARIA": 2000.00, "ANA": null}}`,
			check: func(t *testing.T, sets []*domain.Dataset) {
				assert.Equal(t, []string{"MARIA", "ANA"}, sets[0].Names())
				r, _ := sets[0].Get("ANA")
				assert.False(t, r.Amount.Valid)
			},
		},
		{
			name:    "origin order kept",
			content: `{"z": {}, "a": {}, "m": {}}`,
			check: func(t *testing.T, sets []*domain.Dataset) {
				require.Len(t, sets, 3)
				assert.Equal(t, "z", sets[0].Origin)
				assert.Equal(t, "m", sets[2].Origin)
			},
		},
		{
			name:    "not an object",
			content: `[1, 2]`,
			wantErr: true,
		},
		{
			name:    "truncated",
			content: `{"doc.pdf": {"A": 1`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, t.TempDir(), "db.json", tt.content)

			sets, err := NewJSONStore(path).Load(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, sets)
		})
	}
}
