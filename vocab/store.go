package vocab

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/vec/search"
)

// Store is an immutable token to vector mapping. All vectors share one
// dimension. A Store is safe for concurrent use.
type Store struct {
	index  map[string]int
	tokens []string
	vecs   [][]float32
	mags   []float32
	// exact marks tokens whose source spelling was already lowercase.
	exact []bool
	dim   int
}

// Stats summarizes a Build.
type Stats struct {
	Records    int // records seen
	Loaded     int // distinct tokens kept
	Skipped    int // records rejected for an empty token, an empty vector or a dimension mismatch
	Duplicates int // records whose normalized token was already present
}

// Neighbor is a vocabulary token ranked by cosine similarity.
type Neighbor struct {
	Token      string
	Similarity float64
}

// Empty returns a store with no tokens. It is what semantic scoring falls
// back to when the vocabulary cannot be loaded.
func Empty() *Store {
	return &Store{index: map[string]int{}}
}

// Build reads every record from p and returns the resulting store. The first
// record fixes the dimension; records of any other dimension are skipped.
// Tokens are lowercased. When two records fold to the same token, the first
// one wins unless a later record is spelled exactly in lowercase and the kept
// one was not; "paris" then replaces an earlier "Paris".
func Build(ctx context.Context, p Provider) (*Store, Stats, error) {
	var stats Stats
	s := Empty()
	err := p.Records(ctx, func(token string, vec []float32) error {
		stats.Records++
		token = strings.TrimSpace(token)
		lower := strings.ToLower(token)
		exact := lower == token
		token = lower
		if token == "" || len(vec) == 0 {
			stats.Skipped++
			return nil
		}
		if s.dim == 0 {
			s.dim = len(vec)
		}
		if len(vec) != s.dim {
			stats.Skipped++
			return nil
		}
		if i, ok := s.index[token]; ok {
			stats.Duplicates++
			if exact && !s.exact[i] {
				s.vecs[i] = vec
				s.mags[i] = search.Float32s(vec).Magnitude()
				s.exact[i] = true
			}
			return nil
		}
		s.index[token] = len(s.tokens)
		s.tokens = append(s.tokens, token)
		s.vecs = append(s.vecs, vec)
		s.mags = append(s.mags, search.Float32s(vec).Magnitude())
		s.exact = append(s.exact, exact)
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("vocab: build failed after %d records: %w", stats.Records, err)
	}
	stats.Loaded = len(s.tokens)
	return s, stats, nil
}

// Lookup returns the vector for token. The token must already be lowercase.
func (s *Store) Lookup(token string) ([]float32, bool) {
	i, ok := s.index[token]
	if !ok {
		return nil, false
	}
	return s.vecs[i], true
}

// Len returns the number of tokens.
func (s *Store) Len() int { return len(s.tokens) }

// Dim returns the vector dimension, or 0 for an empty store.
func (s *Store) Dim() int { return s.dim }

// Each visits tokens in load order until fn returns false.
func (s *Store) Each(fn func(token string, vec []float32) bool) {
	for i, token := range s.tokens {
		if !fn(token, s.vecs[i]) {
			return
		}
	}
}

// Nearest returns up to k tokens ordered by decreasing cosine similarity to
// query. Zero-magnitude vectors never match. k <= 0 returns every token.
func (s *Store) Nearest(query []float32, k int) []Neighbor {
	if len(query) != s.dim || s.dim == 0 {
		return nil
	}
	q := search.Float32s(query)
	if q.Magnitude() == 0 {
		return nil
	}
	out := make([]Neighbor, 0, len(s.tokens))
	for i, vec := range s.vecs {
		if s.mags[i] == 0 {
			continue
		}
		d := q.CosineDistance(vec)
		out = append(out, Neighbor{Token: s.tokens[i], Similarity: 1 - float64(d)})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Similarity > out[b].Similarity })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
