// Package vector holds the embedding primitives shared by the scorer, the
// vocabulary and the SQL surface. It includes:
//   - Embedding encoding (little-endian float32 BLOB)
//   - NullEmbedding, an optional caller-supplied embedding
//   - Cosine similarity and mean pooling
package vector
