package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/sqlite-fuzzysem/vocab"
)

func newVocabCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect and convert word vector vocabularies",
	}
	cmd.AddCommand(newVocabStatsCommand(opts))
	cmd.AddCommand(newVocabFilterCommand(opts))
	cmd.AddCommand(newVocabSnapshotCommand(opts))
	cmd.AddCommand(newVocabImportCommand(opts))
	return cmd
}

func newVocabStatsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Load the configured vocabulary and print its statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.vocabulary.Load(cmd.Context()); err != nil {
					return err
				}
				st := a.vocabulary.Stats()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "tokens:     %d\n", st.Loaded)
				fmt.Fprintf(out, "dim:        %d\n", a.store(cmd.Context()).Dim())
				fmt.Fprintf(out, "records:    %d\n", st.Records)
				fmt.Fprintf(out, "skipped:    %d\n", st.Skipped)
				_, err := fmt.Fprintf(out, "duplicates: %d\n", st.Duplicates)
				return err
			})
		},
	}
}

func newVocabFilterCommand(opts *rootOptions) *cobra.Command {
	var (
		maxWords int
		minDim   int
		keepFile string
		outFile  string
	)
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Write the most frequent words plus a keep list as a .vec file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				src := a.provider()
				if src == nil {
					return fmt.Errorf("vocab filter: no vocabulary configured")
				}
				keep, err := readWordList(keepFile)
				if err != nil {
					return err
				}
				w, closeFn, err := createOutput(cmd, outFile)
				if err != nil {
					return err
				}
				res, err := vocab.Filter(cmd.Context(), src, w, vocab.FilterOptions{MaxWords: maxWords, MinDim: minDim, Keep: keep})
				if cerr := closeFn(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				a.logger.Info("vocabulary filtered", "written", res.Written, "missing", len(res.Missing))
				for _, token := range res.Missing {
					fmt.Fprintf(cmd.ErrOrStderr(), "missing: %s\n", token)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&maxWords, "max-words", 50000, "number of leading records to keep")
	cmd.Flags().IntVar(&minDim, "min-dim", 0, "drop records with fewer vector components")
	cmd.Flags().StringVar(&keepFile, "keep", "", "file with one extra word per line to keep")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newVocabSnapshotCommand(opts *rootOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write the configured vocabulary as a binary snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile == "" {
				return fmt.Errorf("vocab snapshot: --out is required")
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.vocabulary.Load(cmd.Context()); err != nil {
					return err
				}
				data, err := a.store(cmd.Context()).MarshalBinary()
				if err != nil {
					return err
				}
				return os.WriteFile(outFile, data, 0o644)
			})
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "snapshot file")
	return cmd
}

func newVocabImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Store the configured vocabulary in the database table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				if err := a.vocabulary.Load(cmd.Context()); err != nil {
					return err
				}
				db, err := a.database()
				if err != nil {
					return err
				}
				store := a.store(cmd.Context())
				if err := vocab.SaveSQLite(cmd.Context(), db, a.cfg.Vocabulary.Table, store); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d tokens into %s\n", store.Len(), a.cfg.Vocabulary.Table)
				return err
			})
		},
	}
}

func readWordList(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	return words, scanner.Err()
}

func createOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
