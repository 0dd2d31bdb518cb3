package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/sqlite-fuzzysem/vector"
)

func newScoreCommand(opts *rootOptions) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "score <query> <candidate>",
		Short: "Score a candidate string against a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				out := cmd.OutOrStdout()
				e := a.scorer.Explain(args[0], args[1], vector.None(), vector.None())
				if !explain {
					_, err := fmt.Fprintf(out, "%.6f\n", e.Score)
					return err
				}
				fmt.Fprintf(out, "score:     %.6f\n", e.Score)
				fmt.Fprintf(out, "stage:     %s\n", e.Stage)
				fmt.Fprintf(out, "distance:  %d\n", e.Distance)
				fmt.Fprintf(out, "lexical:   %.6f\n", e.Lexical)
				if e.SemanticAvailable {
					fmt.Fprintf(out, "semantic:  %.6f\n", e.Semantic)
				} else {
					fmt.Fprintln(out, "semantic:  n/a")
				}
				_, err := fmt.Fprintf(out, "coverage:  %.6f\n", e.Coverage)
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&explain, "explain", "e", false, "print every signal behind the score")
	return cmd
}

func newEmbedCommand(opts *rootOptions) *cobra.Command {
	var asHex bool
	cmd := &cobra.Command{
		Use:   "embed <text>",
		Short: "Print the sentence embedding of a text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				vec, ok := a.embedder.Embed(args[0])
				if !ok {
					return fmt.Errorf("no token of %q is in the vocabulary", args[0])
				}
				if asHex {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(vector.EncodeEmbedding(vec)))
					return err
				}
				parts := make([]string, len(vec))
				for i, v := range vec {
					parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asHex, "hex", false, "print the little-endian float32 BLOB as hex")
	return cmd
}

func newNeighborsCommand(opts *rootOptions) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "neighbors <text>",
		Short: "List the vocabulary tokens closest to a text's embedding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				vec, ok := a.embedder.Embed(args[0])
				if !ok {
					return fmt.Errorf("no token of %q is in the vocabulary", args[0])
				}
				for _, n := range a.store(cmd.Context()).Nearest(vec, k) {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.6f\n", n.Token, n.Similarity); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 10, "number of neighbors")
	return cmd
}
