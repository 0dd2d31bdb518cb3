package vocab

import (
	"bufio"
	"context"
	"io"
	"sort"
	"strings"
)

// FilterOptions selects the records kept by Filter.
type FilterOptions struct {
	// MaxWords bounds how many leading records are kept; for fastText files
	// these are the most frequent words. Every accepted record counts toward
	// the bound, including repeated spellings of a kept word and Keep words.
	MaxWords int
	// MinDim drops records with fewer vector components.
	MinDim int
	// Keep lists tokens retained regardless of their position.
	Keep []string
}

// FilterResult reports what Filter wrote.
type FilterResult struct {
	Written int
	// Missing lists Keep tokens the source never produced, sorted.
	Missing []string
}

// Filter copies a reduced vocabulary from src to w in the ".vec" text format
// without a header. Tokens are compared lowercased and written once.
func Filter(ctx context.Context, src Provider, w io.Writer, opts FilterOptions) (FilterResult, error) {
	keep := make(map[string]bool, len(opts.Keep))
	for _, token := range opts.Keep {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			keep[token] = true
		}
	}
	var result FilterResult
	selected := make(map[string]bool)
	bw := bufio.NewWriter(w)
	count := 0
	err := src.Records(ctx, func(token string, vec []float32) error {
		if len(vec) < opts.MinDim {
			return nil
		}
		key := strings.ToLower(token)
		if count >= opts.MaxWords && !keep[key] {
			return nil
		}
		count++
		if selected[key] {
			return nil
		}
		selected[key] = true
		result.Written++
		return writeText(bw, token, vec)
	})
	if err != nil {
		return result, err
	}
	if err := bw.Flush(); err != nil {
		return result, err
	}
	for token := range keep {
		if !selected[token] {
			result.Missing = append(result.Missing, token)
		}
	}
	sort.Strings(result.Missing)
	return result, nil
}
