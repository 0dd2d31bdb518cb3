// Package catalog stores candidate texts in SQLite together with their
// precomputed sentence embeddings and ranks them against a query with a
// fuzzy.Scorer. It includes:
//   - Item model and Catalog interface
//   - SQLiteCatalog: durable storage plus fuzzy search
//   - Schema helper to create the items table
package catalog
