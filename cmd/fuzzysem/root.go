package main

import (
	"github.com/spf13/cobra"

	"github.com/viant/sqlite-fuzzysem/config"
	"github.com/viant/sqlite-fuzzysem/embed"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "fuzzysem",
		Short:         "Fuzzy and semantic string similarity",
		Long:          "Score string similarity by blending containment, Levenshtein distance and word-embedding cosine similarity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default ./fuzzysem.yaml)")
	flags.String("vocab", "", "vocabulary file (.vec text or snapshot)")
	flags.String("vocab-format", config.FormatText, "vocabulary format: text, snapshot or sqlite")
	flags.String("vocab-table", "vocabulary", "vocabulary table for the sqlite format")
	flags.Int("cache-size", embed.DefaultCacheSize, "sentence embedding cache size, 0 disables")
	flags.String("db", ":memory:", "SQLite database DSN")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newScoreCommand(opts))
	rootCmd.AddCommand(newEmbedCommand(opts))
	rootCmd.AddCommand(newNeighborsCommand(opts))
	rootCmd.AddCommand(newVocabCommand(opts))
	rootCmd.AddCommand(newCatalogCommand(opts))
	rootCmd.AddCommand(newQueryCommand(opts))
	return rootCmd
}

// withApp loads configuration, builds the app and runs fn with it.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) error {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a, err := newApp(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.Close()
	// A vocabulary stored in the database must be read before any statement
	// holds the pool's only connection.
	a.vocabulary.Get(cmd.Context())
	return fn(a)
}
