package vocab

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVec = `4 3
red 1 0 0
bicycle 0 1 0.5
x
shop 0 0 one
sale -1e-1 2 3
`

func TestTextProvider(t *testing.T) {
	var tokens []string
	var vecs [][]float32
	p := NewReaderProvider(strings.NewReader(sampleVec))
	err := p.Records(context.Background(), func(token string, vec []float32) error {
		tokens = append(tokens, token)
		vecs = append(vecs, vec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "bicycle", "sale"}, tokens)
	assert.Equal(t, []float32{-0.1, 2, 3}, vecs[2])
}

func TestTextProvider_HeaderOnlyWhenNumeric(t *testing.T) {
	store, _, err := Build(context.Background(), NewReaderProvider(strings.NewReader("hello 0.5\nworld 1\n")))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len(), "a two-field first line with a word token is a record")
	assert.Equal(t, 1, store.Dim())
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.vec")
	require.NoError(t, os.WriteFile(path, []byte(sampleVec), 0o644))

	store, stats, err := Build(context.Background(), NewFileProvider(path))
	require.NoError(t, err)
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 3, stats.Records)

	_, _, err = Build(context.Background(), NewFileProvider(filepath.Join(t.TempDir(), "missing.vec")))
	require.Error(t, err)
}

func TestTextProvider_SkipsOversizeLine(t *testing.T) {
	var src strings.Builder
	src.WriteString("red 1 0\n")
	src.WriteString("junk")
	src.WriteString(strings.Repeat(" 0.5", maxLineSize/4+1024))
	src.WriteString("\nbicycle 0 1\n")

	store, stats, err := Build(context.Background(), NewReaderProvider(strings.NewReader(src.String())))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 2, stats.Records)
	_, ok := store.Lookup("bicycle")
	assert.True(t, ok)
}

func TestTextProvider_LastLineWithoutNewline(t *testing.T) {
	store, _, err := Build(context.Background(), NewReaderProvider(strings.NewReader("red 1 0\nblue 0 1")))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestFilter(t *testing.T) {
	src := Records{
		{Token: "short", Vector: []float32{1}},
		{Token: "the", Vector: []float32{1, 0}},
		{Token: "The", Vector: []float32{2, 0}},
		{Token: "of", Vector: []float32{0, 1}},
		{Token: "and", Vector: []float32{1, 1}},
		{Token: "bicycle", Vector: []float32{0.5, 0.25}},
	}
	var out bytes.Buffer
	result, err := Filter(context.Background(), src, &out, FilterOptions{MaxWords: 2, MinDim: 2, Keep: []string{"Bicycle", "unicycle"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, []string{"unicycle"}, result.Missing)
	// "The" repeats a kept word but still uses up one of the two slots.
	assert.Equal(t, "the 1 0\nbicycle 0.5 0.25\n", out.String())

	store, _, err := Build(context.Background(), NewReaderProvider(&out))
	require.NoError(t, err)
	vec, ok := store.Lookup("bicycle")
	require.True(t, ok)
	assert.Equal(t, []float32{0.5, 0.25}, vec)
}
