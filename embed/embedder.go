package embed

import (
	"context"

	"github.com/viant/sqlite-fuzzysem/text"
	"github.com/viant/sqlite-fuzzysem/vector"
	"github.com/viant/sqlite-fuzzysem/vocab"
)

// SentenceEmbedder maps text to a sentence embedding. The boolean result is
// false when no token of the text is known, which is distinct from a
// zero-valued embedding.
type SentenceEmbedder interface {
	Embed(text string) ([]float32, bool)
}

// Embedder averages the vocabulary vectors of the tokens found in a text.
type Embedder struct {
	vocabulary *vocab.Shared
}

// New returns an Embedder reading from the shared vocabulary. The vocabulary
// is built on the first Embed call if it has not been loaded yet.
func New(vocabulary *vocab.Shared) *Embedder {
	return &Embedder{vocabulary: vocabulary}
}

// NewStatic returns an Embedder over an already built store.
func NewStatic(store *vocab.Store) *Embedder {
	return New(vocab.NewStatic(store))
}

// Embed implements SentenceEmbedder.
func (e *Embedder) Embed(s string) ([]float32, bool) {
	store := e.vocabulary.Get(context.Background())
	if store.Len() == 0 {
		return nil, false
	}
	acc := vector.NewAccumulator(store.Dim())
	for _, token := range text.Tokenize(s) {
		if vec, ok := store.Lookup(token); ok {
			acc.Add(vec)
		}
	}
	return acc.Mean()
}

// Coverage reports how many tokens of s the vocabulary knows.
func (e *Embedder) Coverage(s string) (found, total int) {
	store := e.vocabulary.Get(context.Background())
	tokens := text.Tokenize(s)
	for _, token := range tokens {
		if _, ok := store.Lookup(token); ok {
			found++
		}
	}
	return found, len(tokens)
}
