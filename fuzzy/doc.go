// Package fuzzy scores how well a candidate string matches a query string on
// a [0,1] scale. The score blends case-insensitive containment, normalized
// Levenshtein similarity and sentence-embedding cosine similarity, then
// applies a floor based on how many query tokens occur in the candidate.
//
// Every stage only raises the running score; containment and empty input
// short-circuit. Scoring never fails: degenerate input resolves to a defined
// score.
package fuzzy
