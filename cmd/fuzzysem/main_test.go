package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVectors = `4 3
red 1 0 0
rojo 0.9 0.1 0
color 0 1 0
blue 0 0 1
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeVectors(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "words.vec")
	require.NoError(t, os.WriteFile(path, []byte(testVectors), 0o644))
	return path
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	vec := writeVectors(t, dir)

	out, err := run(t, "score", "Color Rojo", "rojo")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\n", out)

	out, err = run(t, "score", "--vocab", vec, "red", "rojo")
	require.NoError(t, err)
	assert.NotEqual(t, "0.000000\n", out)

	out, err = run(t, "score", "--explain", "--vocab", vec, "--cache-size", "0", "abc", "xyz")
	require.NoError(t, err)
	assert.Contains(t, out, "score:     0.000000")
	assert.Contains(t, out, "semantic:  n/a")
}

func TestScoreCommandArgs(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := run(t, "score", "only-one")
	assert.Error(t, err)
}

func TestEmbedAndNeighbors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	vec := writeVectors(t, dir)

	out, err := run(t, "embed", "--vocab", vec, "red blue")
	require.NoError(t, err)
	assert.Equal(t, "0.5 0 0.5\n", out)

	out, err = run(t, "embed", "--vocab", vec, "--hex", "red")
	require.NoError(t, err)
	assert.Equal(t, "0000803f0000000000000000\n", out)

	_, err = run(t, "embed", "--vocab", vec, "unknown")
	assert.Error(t, err)

	out, err = run(t, "neighbors", "--vocab", vec, "-k", "2", "red")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "red\t"))
	assert.True(t, strings.HasPrefix(lines[1], "rojo\t"))
}

func TestVocabCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	vec := writeVectors(t, dir)

	out, err := run(t, "vocab", "stats", "--vocab", vec)
	require.NoError(t, err)
	assert.Contains(t, out, "tokens:     4")
	assert.Contains(t, out, "dim:        3")

	snapshot := filepath.Join(dir, "words.snap")
	_, err = run(t, "vocab", "snapshot", "--vocab", vec, "--out", snapshot)
	require.NoError(t, err)
	out, err = run(t, "vocab", "stats", "--vocab", snapshot, "--vocab-format", "snapshot")
	require.NoError(t, err)
	assert.Contains(t, out, "tokens:     4")

	keep := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("blue\nverde\n"), 0o644))
	filtered := filepath.Join(dir, "small.vec")
	_, err = run(t, "vocab", "filter", "--vocab", vec, "--max-words", "1", "--keep", keep, "--out", filtered)
	require.NoError(t, err)
	data, err := os.ReadFile(filtered)
	require.NoError(t, err)
	assert.Contains(t, string(data), "red ")
	assert.Contains(t, string(data), "blue ")
	assert.NotContains(t, string(data), "rojo ")

	db := filepath.Join(dir, "fuzzy.db")
	out, err = run(t, "vocab", "import", "--vocab", vec, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "imported 4 tokens into vocabulary\n", out)
	out, err = run(t, "vocab", "stats", "--vocab-format", "sqlite", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "tokens:     4")
}

func TestCatalogCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	vec := writeVectors(t, dir)
	db := filepath.Join(dir, "fuzzy.db")

	items := filepath.Join(dir, "items.tsv")
	require.NoError(t, os.WriteFile(items, []byte("1\tcolor rojo\n2\tblue sky\n"), 0o644))
	out, err := run(t, "catalog", "add", "--vocab", vec, "--db", db, "--file", items)
	require.NoError(t, err)
	assert.Equal(t, "added 2 items\n", out)

	out, err = run(t, "catalog", "search", "--vocab", vec, "--db", db, "-k", "1", "rojo")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\t1\tcolor rojo\n", out)

	_, err = run(t, "catalog", "remove", "--db", db, "1")
	require.NoError(t, err)
	out, err = run(t, "catalog", "search", "--vocab", vec, "--db", db, "-k", "1", "rojo")
	require.NoError(t, err)
	assert.NotContains(t, out, "color rojo")
}

func TestQueryCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "query", "SELECT levenshtein('kitten', 'sitting') AS d, fuzzy_score('Color Rojo', 'rojo') AS s")
	require.NoError(t, err)
	assert.Equal(t, "d\ts\n3\t1.000000\n", out)
}

func TestQueryCommandWithSQLiteVocabulary(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "query", "--vocab-format", "sqlite", "SELECT fuzzy_score('car', 'automobile') >= 0 AS ok")
	require.NoError(t, err)
	assert.Equal(t, "ok\n1\n", out)

	db := filepath.Join(dir, "fuzzy.db")
	_, err = run(t, "vocab", "import", "--vocab", writeVectors(t, dir), "--db", db)
	require.NoError(t, err)
	out, err = run(t, "query", "--vocab-format", "sqlite", "--db", db, "SELECT fuzzy_embedding('red') IS NOT NULL AS found")
	require.NoError(t, err)
	assert.Equal(t, "found\n1\n", out)
}

func TestConfigFileIsApplied(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	vec := writeVectors(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fuzzysem.yaml"), []byte("vocabulary:\n  path: "+vec+"\n"), 0o644))

	out, err := run(t, "vocab", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "tokens:     4")
}
