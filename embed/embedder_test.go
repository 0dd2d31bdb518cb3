package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sqlite-fuzzysem/vocab"
)

func testStore(t *testing.T) *vocab.Store {
	t.Helper()
	store, _, err := vocab.Build(context.Background(), vocab.Records{
		{Token: "red", Vector: []float32{1, 0, 0}},
		{Token: "bicycle", Vector: []float32{0, 1, 0}},
		{Token: "shop", Vector: []float32{0, 0, 3}},
		{Token: "canción", Vector: []float32{2, 2, 2}},
	})
	require.NoError(t, err)
	return store
}

func TestEmbedder_Embed(t *testing.T) {
	embedder := NewStatic(testStore(t))

	testCases := []struct {
		description string
		input       string
		expect      []float32
		ok          bool
	}{
		{description: "single token", input: "Red", expect: []float32{1, 0, 0}, ok: true},
		{description: "mean of found tokens", input: "red BICYCLE", expect: []float32{0.5, 0.5, 0}, ok: true},
		{description: "unknown tokens are excluded", input: "a red unknown bicycle!", expect: []float32{0.5, 0.5, 0}, ok: true},
		{description: "repeated tokens weigh twice", input: "shop shop red", expect: []float32{1.0 / 3, 0, 2}, ok: true},
		{description: "accented token", input: "Canción", expect: []float32{2, 2, 2}, ok: true},
		{description: "no hits is absent", input: "nothing known here", ok: false},
		{description: "empty text is absent", input: "", ok: false},
	}
	for _, testCase := range testCases {
		vec, ok := embedder.Embed(testCase.input)
		assert.Equal(t, testCase.ok, ok, testCase.description)
		if !testCase.ok {
			assert.Nil(t, vec, testCase.description)
			continue
		}
		require.Len(t, vec, len(testCase.expect), testCase.description)
		for i := range vec {
			assert.InDelta(t, testCase.expect[i], vec[i], 1e-6, testCase.description)
		}
	}
}

func TestEmbedder_EmptyVocabulary(t *testing.T) {
	embedder := NewStatic(vocab.Empty())
	_, ok := embedder.Embed("red bicycle")
	assert.False(t, ok)
}

func TestEmbedder_Coverage(t *testing.T) {
	embedder := NewStatic(testStore(t))
	found, total := embedder.Coverage("red bicycle repair")
	assert.Equal(t, 2, found)
	assert.Equal(t, 3, total)
}
