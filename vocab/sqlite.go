package vocab

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/viant/sqlite-fuzzysem/vector"
)

// DefaultTable is the SQLite table read by SQLiteProvider when none is given.
const DefaultTable = "vocabulary"

// SQLiteProvider reads (token TEXT, embedding BLOB) rows from a table. The
// embedding column uses the vector BLOB encoding.
type SQLiteProvider struct {
	db    *sql.DB
	table string
}

// NewSQLiteProvider returns a provider over table in db.
func NewSQLiteProvider(db *sql.DB, table string) *SQLiteProvider {
	if table == "" {
		table = DefaultTable
	}
	return &SQLiteProvider{db: db, table: sanitizeName(table)}
}

// Records implements Provider.
func (p *SQLiteProvider) Records(ctx context.Context, fn func(token string, vec []float32) error) error {
	if p.db == nil {
		return fmt.Errorf("vocab: db is nil")
	}
	rows, err := p.db.QueryContext(ctx, `SELECT token, embedding FROM `+p.table+` ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("vocab: query %s: %w", p.table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var token string
		var blob []byte
		if err := rows.Scan(&token, &blob); err != nil {
			return err
		}
		vec, err := vector.DecodeEmbedding(blob)
		if err != nil {
			return fmt.Errorf("vocab: token %q: %w", token, err)
		}
		if err := fn(token, vec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// SaveSQLite writes every token of s into table, creating it if needed.
// Existing tokens are replaced.
func SaveSQLite(ctx context.Context, db *sql.DB, table string, s *Store) error {
	if db == nil {
		return fmt.Errorf("vocab: db is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	table = sanitizeName(table)
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (
    token TEXT PRIMARY KEY,
    embedding BLOB NOT NULL
)`); err != nil {
		return fmt.Errorf("vocab: create %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO `+table+`(token, embedding) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var execErr error
	s.Each(func(token string, vec []float32) bool {
		_, execErr = stmt.ExecContext(ctx, token, vector.EncodeEmbedding(vec))
		return execErr == nil
	})
	if execErr != nil {
		return execErr
	}
	return tx.Commit()
}

// sanitizeName keeps identifier characters and dots so that table names can
// be interpolated into SQL.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || r == '.' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultTable
	}
	return b.String()
}
