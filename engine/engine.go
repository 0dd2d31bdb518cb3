package engine

import (
	"database/sql"

	"github.com/viant/sqlite-fuzzysem/fuzzy"
	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// OpenWithScorer registers the SQL functions backed by scorer and then opens
// dsn, so every connection of the returned pool sees them. A vocabulary read
// from the same pool must be loaded before the first fuzzy_* statement runs.
func OpenWithScorer(dsn string, scorer *fuzzy.Scorer) (*sql.DB, error) {
	if err := RegisterFunctions(nil, scorer); err != nil {
		return nil, err
	}
	return Open(dsn)
}
