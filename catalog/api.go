package catalog

import "context"

// Item is a candidate text stored in the catalog.
type Item struct {
	// ID is the logical identifier of the item and must be set on insert.
	ID string

	// Content is the text matched against queries.
	Content string

	// Embedding is the sentence embedding of Content. It is computed on
	// insert when empty; it stays nil when Content has no vocabulary hits.
	Embedding []float32
}

// Match is an item ranked against a query.
type Match struct {
	ID      string
	Content string
	Score   float64
}

// Catalog defines the fuzzy search API over stored items.
type Catalog interface {
	// Add inserts or replaces items and returns their IDs.
	Add(ctx context.Context, items []Item) ([]string, error)

	// Search returns up to k items whose score against query is at least
	// minScore, best first. k <= 0 returns every qualifying item.
	Search(ctx context.Context, query string, k int, minScore float64) ([]Match, error)

	// Remove deletes the item with the given ID.
	Remove(ctx context.Context, id string) error
}
