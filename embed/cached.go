package embed

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of texts remembered by Cached when no size
// is given.
const DefaultCacheSize = 4096

type cachedEntry struct {
	vec []float32
	ok  bool
}

// Cached memoizes a SentenceEmbedder with an LRU keyed by the input text.
// Absent embeddings are cached too. Returned vectors are shared between
// callers and must not be modified.
type Cached struct {
	next  SentenceEmbedder
	cache *lru.Cache[string, cachedEntry]
}

// NewCached wraps next with an LRU of the given size.
func NewCached(next SentenceEmbedder, size int) (*Cached, error) {
	if next == nil {
		return nil, fmt.Errorf("embed: next embedder is nil")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedEntry](size)
	if err != nil {
		return nil, fmt.Errorf("embed: create cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Embed implements SentenceEmbedder.
func (c *Cached) Embed(s string) ([]float32, bool) {
	if entry, ok := c.cache.Get(s); ok {
		return entry.vec, entry.ok
	}
	vec, ok := c.next.Embed(s)
	c.cache.Add(s, cachedEntry{vec: vec, ok: ok})
	return vec, ok
}

// Len returns the number of cached texts.
func (c *Cached) Len() int { return c.cache.Len() }

// Purge drops every cached embedding.
func (c *Cached) Purge() { c.cache.Purge() }
