package vector

// NullEmbedding is an optional, caller-supplied embedding. When Valid is
// false the scorer computes the sentence embedding itself.
type NullEmbedding struct {
	Embedding []float32
	Valid     bool
}

// Some wraps vec as a present embedding.
func Some(vec []float32) NullEmbedding {
	return NullEmbedding{Embedding: vec, Valid: true}
}

// None returns an absent embedding.
func None() NullEmbedding {
	return NullEmbedding{}
}

// FromBlob decodes an embedding BLOB. A nil or empty BLOB is absent.
func FromBlob(b []byte) (NullEmbedding, error) {
	vec, err := DecodeEmbedding(b)
	if err != nil {
		return NullEmbedding{}, err
	}
	if vec == nil {
		return NullEmbedding{}, nil
	}
	return Some(vec), nil
}
