package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLedgerCommand(t *testing.T) {
	dir := t.TempDir()
	project := writeFile(t, dir, "project.txt", "JOAO DA SILVA: 100,00\nMARIA SOUZA: 50,00\n")
	payments := writeFile(t, dir, "payments.txt", "JOAO DA SILVA: 100,00\nPEDRO LIMA: 10,00\n")
	reportPath := filepath.Join(dir, "report.csv")
	foundPath := filepath.Join(dir, "found.txt")
	notFoundPath := filepath.Join(dir, "not_found.txt")

	out, err := runCommand(t, "ledger", project, payments,
		"--format", "tabular",
		"--report", reportPath,
		"--found", foundPath,
		"--not-found", notFoundPath,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Found: 1\n")
	assert.Contains(t, out, "Not found: 1\n")
	assert.Contains(t, out, "Total value: 150,00\n")

	found, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(found), "JOAO DA SILVA: 100,00")

	notFound, err := os.ReadFile(notFoundPath)
	require.NoError(t, err)
	assert.Contains(t, string(notFound), "MARIA SOUZA: 50,00")

	rep, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(rep), `"Origin";"Name";"Amount";"Status"`))
}

func TestLedgerCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	payments := writeFile(t, dir, "payments.txt", "JOAO DA SILVA: 100,00\n")

	_, err := runCommand(t, "ledger", filepath.Join(dir, "missing.txt"), payments,
		"--report", filepath.Join(dir, "r.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestLedgerCommand_Args(t *testing.T) {
	_, err := runCommand(t, "ledger", "only-one.txt")
	assert.Error(t, err)
}

func TestTotalsCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "list.txt", "ANA: 10,00\nBRUNO: 5,50\n")

	out, err := runCommand(t, "totals", path, filepath.Join(dir, "absent.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 2 names, Value: 15,50")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Total: 2 names, Value: 15,50\nANA: 10,00\nBRUNO: 5,50\n", string(data))
}

func TestTotalsCommand_NothingReadable(t *testing.T) {
	_, err := runCommand(t, "totals", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestExplainCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "ref.txt", "JOAO DA SILVA: 100,00\nMARIA SOUZA: 50,00\n")

	out, err := runCommand(t, "explain", "JOAO DA SILVA", "--dataset", dataset, "--json")
	require.NoError(t, err)

	var tr struct {
		Query   string `json:"query"`
		Exact   bool   `json:"exact"`
		Outcome string `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	assert.Equal(t, "JOAO DA SILVA", tr.Query)
	assert.True(t, tr.Exact)
	assert.Equal(t, "Complete", tr.Outcome)
}

func TestExplainCommand_Text(t *testing.T) {
	dir := t.TempDir()
	dataset := writeFile(t, dir, "ref.txt", "JOAO DA SILVA: 100,00\n")

	out, err := runCommand(t, "explain", "MARIA", "--dataset", dataset, "--nearest", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Query: MARIA")
	assert.Contains(t, out, "Outcome: Not found")
	assert.Contains(t, out, "~ JOAO DA SILVA")
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	text := writeFile(t, dir, "folha.txt",
		"001 - JOAO DA SILVA 123.456.789-00 Analista 1.234,56\n"+
			"002 - MARIA JOSE 987.654.321-00 Tecnica 980,00\n")
	output := filepath.Join(dir, "dataset.txt")

	out, err := runCommand(t, "extract", text, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Records: 2")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"Total: 2 names, Value: 2.214,56\nJOAO DA SILVA: 1.234,56\nMARIA JOSE: 980,00\n",
		string(data))
}

func TestIngestThenLegacy(t *testing.T) {
	dir := t.TempDir()
	texts := filepath.Join(dir, "texts")
	require.NoError(t, os.Mkdir(texts, 0755))
	writeFile(t, texts, "Projeto A - 2024.pdf.txt", "001 - JOAO DA SILVA 123.456.789-00 Analista 1.234,56\n")
	store := filepath.Join(dir, "reference.json")

	out, err := runCommand(t, "ingest", texts, "--reference", store)
	require.NoError(t, err)
	assert.Contains(t, out, "Documents: 1")
	assert.Contains(t, out, "Records: 1")
	assert.FileExists(t, store)

	out, err = runCommand(t, "explain", "JOAO DA SILVA", "--reference", store)
	require.NoError(t, err)
	assert.Contains(t, out, "Outcome: Complete")
}
