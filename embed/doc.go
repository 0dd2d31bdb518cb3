// Package embed computes sentence embeddings by mean-pooling the vocabulary
// vectors of a text's tokens.
package embed
