package catalog

import (
	"context"
	"database/sql"
)

const itemsSchema = `
CREATE TABLE IF NOT EXISTS fuzzy_items (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    embedding BLOB
);
`

// EnsureSchema creates the fuzzy_items table in the provided database if it
// does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, itemsSchema)
	return err
}
