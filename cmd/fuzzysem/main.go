// Command fuzzysem scores strings with the fuzzy/semantic scorer, manages
// word-embedding vocabularies and runs SQL against a SQLite database with the
// fuzzy functions registered.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fuzzysem:", err)
		os.Exit(1)
	}
}
