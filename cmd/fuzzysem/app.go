package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/sqlite-fuzzysem/config"
	"github.com/viant/sqlite-fuzzysem/embed"
	"github.com/viant/sqlite-fuzzysem/engine"
	"github.com/viant/sqlite-fuzzysem/fuzzy"
	"github.com/viant/sqlite-fuzzysem/vocab"
)

// app wires configuration into the vocabulary, embedder, scorer and database.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	vocabulary *vocab.Shared
	embedder   *embed.Embedder
	scorer     *fuzzy.Scorer
	db         *sql.DB
}

func newApp(cfg *config.Config, logOut io.Writer) (*app, error) {
	a := &app{cfg: cfg, logger: cfg.NewLogger(logOut)}
	a.vocabulary = vocab.NewShared(a.provider(), vocab.WithLogger(a.logger))
	a.embedder = embed.New(a.vocabulary)

	var sentence embed.SentenceEmbedder = a.embedder
	if cfg.Cache.Size > 0 {
		cached, err := embed.NewCached(a.embedder, cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
		sentence = cached
	}
	a.scorer = fuzzy.New(sentence)
	return a, nil
}

// provider returns the configured vocabulary source, or nil when none is
// configured.
func (a *app) provider() vocab.Provider {
	v := a.cfg.Vocabulary
	switch v.Format {
	case config.FormatSQLite:
		return vocab.ProviderFunc(func(ctx context.Context, fn func(string, []float32) error) error {
			db, err := a.database()
			if err != nil {
				return err
			}
			return vocab.NewSQLiteProvider(db, v.Table).Records(ctx, fn)
		})
	case config.FormatSnapshot:
		if v.Path == "" {
			break
		}
		return vocab.NewSnapshotFileProvider(v.Path)
	default:
		if v.Path == "" {
			break
		}
		return vocab.NewFileProvider(v.Path, vocab.WithLogger(a.logger))
	}
	a.logger.Warn("no vocabulary configured, semantic scoring disabled")
	return nil
}

// database opens the configured SQLite database with the fuzzy functions
// registered.
func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := engine.OpenWithScorer(a.cfg.DB.DSN, a.scorer)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", a.cfg.DB.DSN, err)
	}
	if a.cfg.DB.DSN == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	a.db = db
	return db, nil
}

func (a *app) store(ctx context.Context) *vocab.Store {
	return a.vocabulary.Get(ctx)
}

func (a *app) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
