package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viant/sqlite-fuzzysem/catalog"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage and search a table of candidate texts",
	}
	cmd.AddCommand(newCatalogAddCommand(opts))
	cmd.AddCommand(newCatalogSearchCommand(opts))
	cmd.AddCommand(newCatalogRemoveCommand(opts))
	cmd.AddCommand(newCatalogReembedCommand(opts))
	return cmd
}

func openCatalog(cmd *cobra.Command, a *app) (*catalog.SQLiteCatalog, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	return catalog.NewSQLiteCatalog(cmd.Context(), db, a.scorer, a.logger)
}

func newCatalogAddCommand(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "add [id content]",
		Short: "Add one item, or every \"id<TAB>content\" line of --file",
		Args: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.NoArgs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []catalog.Item
			if file == "" {
				items = []catalog.Item{{ID: args[0], Content: args[1]}}
			} else {
				var err error
				if items, err = readItems(file); err != nil {
					return err
				}
			}
			return withApp(cmd, opts, func(a *app) error {
				c, err := openCatalog(cmd, a)
				if err != nil {
					return err
				}
				ids, err := c.Add(cmd.Context(), items)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "added %d items\n", len(ids))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "tab separated id and content per line")
	return cmd
}

func newCatalogSearchCommand(opts *rootOptions) *cobra.Command {
	var (
		k        int
		minScore float64
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank catalog items against a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				c, err := openCatalog(cmd, a)
				if err != nil {
					return err
				}
				matches, err := c.Search(cmd.Context(), args[0], k, minScore)
				if err != nil {
					return err
				}
				for _, m := range matches {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%.6f\t%s\t%s\n", m.Score, m.ID, m.Content); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 10, "maximum number of matches, 0 for all")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "minimum score to report")
	return cmd
}

func newCatalogRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				c, err := openCatalog(cmd, a)
				if err != nil {
					return err
				}
				return c.Remove(cmd.Context(), args[0])
			})
		},
	}
}

func newCatalogReembedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reembed",
		Short: "Compute embeddings for items stored without one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				c, err := openCatalog(cmd, a)
				if err != nil {
					return err
				}
				n, err := c.Reembed(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "reembedded %d items\n", n)
				return err
			})
		},
	}
}

func readItems(path string) ([]catalog.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var items []catalog.Item
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		id, content, ok := strings.Cut(text, "\t")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected id<TAB>content", path, line)
		}
		items = append(items, catalog.Item{ID: id, Content: content})
	}
	return items, scanner.Err()
}
