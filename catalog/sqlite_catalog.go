package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/viant/sqlite-fuzzysem/fuzzy"
	"github.com/viant/sqlite-fuzzysem/vector"
)

// SQLiteCatalog is a Catalog backed by the fuzzy_items table. Items are
// scored in Go with the scorer given to NewSQLiteCatalog, so any SQLite pool
// works.
type SQLiteCatalog struct {
	db     *sql.DB
	scorer *fuzzy.Scorer
	logger *slog.Logger
}

// NewSQLiteCatalog creates a catalog and ensures its schema exists.
func NewSQLiteCatalog(ctx context.Context, db *sql.DB, scorer *fuzzy.Scorer, logger *slog.Logger) (*SQLiteCatalog, error) {
	if db == nil {
		return nil, fmt.Errorf("catalog: db is nil")
	}
	if scorer == nil {
		return nil, fmt.Errorf("catalog: scorer is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("catalog: ensure schema: %w", err)
	}
	return &SQLiteCatalog{db: db, scorer: scorer, logger: logger}, nil
}

// Add inserts or replaces items, computing missing embeddings.
func (c *SQLiteCatalog) Add(ctx context.Context, items []Item) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO fuzzy_items(id, content, embedding) VALUES(?, ?, ?)`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]string, 0, len(items))
	missing := 0
	for _, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog: Item.ID must be set")
		}
		var blob []byte
		if len(item.Embedding) > 0 {
			blob = vector.EncodeEmbedding(item.Embedding)
		} else if computed, ok := c.scorer.Embedding(item.Content); ok {
			blob = computed
		} else {
			missing++
		}
		if _, err := stmt.ExecContext(ctx, item.ID, item.Content, blob); err != nil {
			return nil, fmt.Errorf("catalog: insert %s: %w", item.ID, err)
		}
		ids = append(ids, item.ID)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if missing > 0 {
		c.logger.Debug("catalog items without embedding", "count", missing)
	}
	return ids, nil
}

// Search ranks every item with the catalog's scorer. The query embedding is
// computed once and each row contributes its stored embedding, so no sentence
// embedding is recomputed per row unless the row has none.
func (c *SQLiteCatalog) Search(ctx context.Context, query string, k int, minScore float64) ([]Match, error) {
	if query == "" {
		return nil, nil
	}
	queryEmb := vector.None()
	if vec, ok := c.scorer.SentenceEmbedding(query); ok {
		queryEmb = vector.Some(vec)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT id, content, embedding FROM fuzzy_items`)
	if err != nil {
		return nil, fmt.Errorf("catalog: search: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var m Match
		var blob []byte
		if err := rows.Scan(&m.ID, &m.Content, &blob); err != nil {
			return nil, err
		}
		stored, err := vector.FromBlob(blob)
		if err != nil {
			return nil, fmt.Errorf("catalog: item %s: %w", m.ID, err)
		}
		m.Score = c.scorer.Score(query, m.Content, queryEmb, stored)
		if m.Score >= minScore {
			out = append(out, m)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out, nil
}

// Remove deletes an item by ID.
func (c *SQLiteCatalog) Remove(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("catalog: Remove called with empty id")
	}
	_, err := c.db.ExecContext(ctx, `DELETE FROM fuzzy_items WHERE id = ?`, id)
	return err
}

// Reembed computes embeddings for items stored without one, typically because
// the vocabulary was unavailable when they were added. It returns the number
// of items updated; items whose content still has no vocabulary hit stay NULL.
func (c *SQLiteCatalog) Reembed(ctx context.Context) (int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, content FROM fuzzy_items WHERE embedding IS NULL OR length(embedding) = 0`)
	if err != nil {
		return 0, fmt.Errorf("catalog: reembed: %w", err)
	}
	var pending []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Content); err != nil {
			rows.Close()
			return 0, err
		}
		pending = append(pending, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()
	updated := 0
	for _, item := range pending {
		blob, ok := c.scorer.Embedding(item.Content)
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE fuzzy_items SET embedding = ? WHERE id = ?`, blob, item.ID); err != nil {
			return 0, fmt.Errorf("catalog: reembed %s: %w", item.ID, err)
		}
		updated++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	c.logger.Info("catalog reembedded", "updated", updated, "pending", len(pending))
	return updated, nil
}

// Ensure SQLiteCatalog satisfies the Catalog interface.
var _ Catalog = (*SQLiteCatalog)(nil)
