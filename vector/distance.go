package vector

import "math"

// CosineSimilarity computes the cosine similarity between two vectors,
// accumulating in float64. It returns 0 when either vector has zero
// magnitude, when the vectors are empty, or when their lengths differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2))
}

// Accumulator sums float32 vectors of one dimension in float64 and yields
// their arithmetic mean.
type Accumulator struct {
	sum   []float64
	count int
}

// NewAccumulator returns an accumulator for vectors of length dim.
func NewAccumulator(dim int) *Accumulator {
	return &Accumulator{sum: make([]float64, dim)}
}

// Add folds vec into the running sum. Vectors of another length are ignored
// and reported as false.
func (a *Accumulator) Add(vec []float32) bool {
	if len(vec) != len(a.sum) {
		return false
	}
	for i, v := range vec {
		a.sum[i] += float64(v)
	}
	a.count++
	return true
}

// Count returns the number of vectors added.
func (a *Accumulator) Count() int { return a.count }

// Mean returns the component-wise mean narrowed to float32, or false when
// nothing was added.
func (a *Accumulator) Mean() ([]float32, bool) {
	if a.count == 0 {
		return nil, false
	}
	out := make([]float32, len(a.sum))
	n := float64(a.count)
	for i, s := range a.sum {
		out[i] = float32(s / n)
	}
	return out, true
}
