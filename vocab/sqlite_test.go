package vocab

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestSQLiteProvider_RoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	orig, _, err := Build(ctx, Records{
		{Token: "red", Vector: []float32{1, 0}},
		{Token: "bicycle", Vector: []float32{0, 1}},
	})
	require.NoError(t, err)
	require.NoError(t, SaveSQLite(ctx, db, "", orig))

	restored, stats, err := Build(ctx, NewSQLiteProvider(db, DefaultTable))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Loaded)
	vec, ok := restored.Lookup("bicycle")
	require.True(t, ok)
	assert.Equal(t, []float32{0, 1}, vec)
}

func TestSQLiteProvider_MissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, _, err = Build(context.Background(), NewSQLiteProvider(db, "no_such_table"))
	require.Error(t, err)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "main.vocab", sanitizeName("main.vocab"))
	assert.Equal(t, "vocabdrop", sanitizeName("vocab; drop"))
	assert.Equal(t, DefaultTable, sanitizeName("';"))
}
