package gateway

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"name-reconciliation/internal/currency"
	"name-reconciliation/internal/domain"
)

func TestFileRepository_LoadDataset(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		wantNames   []string
		wantUnknown int
	}{
		{
			name:      "valid records",
			lines:     []string{"Total: 2 names, Value: 3,00", "JOAO SILVA: 1,00", "MARIA JOSE: 2,00"},
			wantNames: []string{"JOAO SILVA", "MARIA JOSE"},
		},
		{
			name:        "bad amount counts as unknown",
			lines:       []string{"JOAO SILVA: 1,00", "ANA: x"},
			wantNames:   []string{"JOAO SILVA", "ANA"},
			wantUnknown: 1,
		},
		{
			name:  "empty file",
			lines: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, t.TempDir(), "payments.txt", strings.Join(tt.lines, "\n"))
			repo := NewFileRepository(currency.BRL, nil, "")

			ds, stats, err := repo.LoadDataset(context.Background(), path, nil)

			require.NoError(t, err)
			assert.Equal(t, "payments.txt", ds.Origin)
			if tt.wantNames == nil {
				assert.Empty(t, ds.Names())
			} else {
				assert.Equal(t, tt.wantNames, ds.Names())
			}
			assert.Equal(t, tt.wantUnknown, stats.UnknownValue)
		})
	}
}

func TestFileRepository_LoadDataset_FileErrors(t *testing.T) {
	repo := NewFileRepository(currency.BRL, nil, "")

	t.Run("file not found", func(t *testing.T) {
		_, _, err := repo.LoadDataset(context.Background(), filepath.Join(t.TempDir(), "nonexistent.txt"), nil)
		assert.True(t, errors.Is(err, domain.ErrSourceNotFound))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := repo.LoadDataset(ctx, "whatever.txt", nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileRepository_LoadLegacyNames(t *testing.T) {
	dir := t.TempDir()
	legacy := strings.Join([]string{
		"HEADER",
		"HEADER 2",
		"001 JOÃO DA SILVA 123",
		"detail",
		"002 0BD IGNORED NAME",
		"detail",
		"003 MARIA JOSE",
		"FOOTER",
		"FOOTER 2",
	}, "\n")
	latin1, err := charmap.ISO8859_1.NewEncoder().String(legacy)
	require.NoError(t, err)

	writeTempFile(t, dir, "b.RET", latin1)
	writeTempFile(t, dir, "a.txt", "H\nH\n004 ANA COSTA\nx\nF\nF")
	writeTempFile(t, dir, "ignored.pdf", "nothing")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	repo := NewFileRepository(currency.BRL, charmap.ISO8859_1, "0BD")
	files, warnings, err := repo.LoadLegacyNames(context.Background(), dir)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.txt"), files[0].Path)
	assert.Equal(t, []string{"ANA COSTA"}, files[0].Names)
	assert.Equal(t, []string{"JOÃO DA SILVA", "MARIA JOSE"}, files[1].Names)
}

func TestFileRepository_LoadLegacyNames_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "a.ret", "H\nH\n004 ANA COSTA\nx\nF\nF")
	bad := writeTempFile(t, dir, "b.ret", "H\n"+strings.Repeat("X", 5*1024*1024)+"\n")

	repo := NewFileRepository(currency.BRL, charmap.ISO8859_1, "0BD")
	files, warnings, err := repo.LoadLegacyNames(context.Background(), dir)

	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], bufio.ErrTooLong)
	assert.False(t, errors.Is(warnings[0], domain.ErrSourceNotFound), "an existing file is not reported as missing")
	assert.Contains(t, warnings[0].Error(), bad)
}

func TestFileRepository_LoadLegacyNames_MissingFolder(t *testing.T) {
	repo := NewFileRepository(currency.BRL, charmap.ISO8859_1, "0BD")

	_, _, err := repo.LoadLegacyNames(context.Background(), filepath.Join(t.TempDir(), "missing"))

	var notFound *domain.SourceNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFileRepository_LoadTexts(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "Projeto B - fev.pdf.txt", "second")
	writeTempFile(t, dir, "Projeto A - jan.pdf.txt", "first")
	writeTempFile(t, dir, "notes.md", "skip")

	repo := NewFileRepository(currency.BRL, nil, "")
	docs, warnings, err := repo.LoadTexts(context.Background(), dir)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []domain.TextDocument{
		{Origin: "Projeto A - jan.pdf", Text: "first"},
		{Origin: "Projeto B - fev.pdf", Text: "second"},
	}, docs)
}

// Helper functions

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
