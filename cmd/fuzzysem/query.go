package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL statement with the fuzzy functions registered",
		Example: `  fuzzysem query "SELECT fuzzy_score('color rojo', 'rojo')"
  fuzzysem query "SELECT levenshtein('kitten', 'sitting')"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				db, err := a.database()
				if err != nil {
					return err
				}
				rows, err := db.QueryContext(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				defer rows.Close()
				cols, err := rows.Columns()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, strings.Join(cols, "\t"))
				values := make([]any, len(cols))
				ptrs := make([]any, len(cols))
				for i := range values {
					ptrs[i] = &values[i]
				}
				cells := make([]string, len(cols))
				for rows.Next() {
					if err := rows.Scan(ptrs...); err != nil {
						return err
					}
					for i, v := range values {
						cells[i] = formatCell(v)
					}
					fmt.Fprintln(out, strings.Join(cells, "\t"))
				}
				return rows.Err()
			})
		},
	}
}

func formatCell(v any) string {
	switch actual := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("x'%x'", actual)
	case float64:
		return fmt.Sprintf("%.6f", actual)
	default:
		return fmt.Sprint(actual)
	}
}
