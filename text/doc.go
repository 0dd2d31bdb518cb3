// Package text provides the lexical primitives used by the fuzzy scorer:
// word tokenization and Levenshtein edit distance. Both operate on runes so
// that accented input is measured per character rather than per byte.
package text
