// Package vocab holds the word-embedding vocabulary used for semantic
// scoring. A Store is an immutable token to vector mapping built once from a
// Provider (fastText text files, binary snapshots, or a SQLite table) and
// shared read-only for the life of the process. Shared publishes a store
// exactly once under concurrent first use and degrades to an empty store when
// the provider cannot be read.
package vocab
