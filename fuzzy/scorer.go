package fuzzy

import (
	"strings"

	"github.com/viant/sqlite-fuzzysem/embed"
	"github.com/viant/sqlite-fuzzysem/text"
	"github.com/viant/sqlite-fuzzysem/vector"
)

const (
	fullCoverageFloor   = 0.98
	partialCoverageMin  = 0.5
	partialCoverageBase = 0.5
	partialCoverageRate = 0.35
)

// Stage names the pipeline step that decided a score.
type Stage string

const (
	StageEmpty       Stage = "empty"
	StageContainment Stage = "containment"
	StageLexical     Stage = "lexical"
	StageSemantic    Stage = "semantic"
	StageCoverage    Stage = "coverage"
)

// Explanation breaks a score down into its signals.
type Explanation struct {
	Score float64
	Stage Stage
	// Distance is the Levenshtein distance of the lowercased inputs.
	Distance int
	Lexical  float64
	Semantic float64
	// SemanticAvailable is false when either side had no embedding.
	SemanticAvailable bool
	// Coverage is the fraction of query tokens found in the candidate.
	Coverage float64
}

// Scorer computes fuzzy/semantic similarity. It is safe for concurrent use
// when its SentenceEmbedder is.
type Scorer struct {
	embedder embed.SentenceEmbedder
}

// New returns a Scorer. A nil embedder disables semantic scoring unless the
// caller supplies both embeddings.
func New(embedder embed.SentenceEmbedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score returns the similarity of candidate b to query a in [0,1]. Supplied
// embeddings take precedence over computed ones for their side.
func (s *Scorer) Score(a, b string, ea, eb vector.NullEmbedding) float64 {
	return s.Explain(a, b, ea, eb).Score
}

// Explain scores a against b and reports every signal used.
func (s *Scorer) Explain(a, b string, ea, eb vector.NullEmbedding) Explanation {
	if a == "" || b == "" {
		return Explanation{Stage: StageEmpty}
	}
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	if strings.Contains(lb, la) || strings.Contains(la, lb) {
		return Explanation{Score: 1, Stage: StageContainment}
	}

	ret := Explanation{Stage: StageLexical}
	ret.Distance = text.Levenshtein(la, lb)
	maxLen := max(text.RuneLen(la), text.RuneLen(lb))
	ret.Lexical = 1 - float64(ret.Distance)/float64(maxLen)

	va, okA := s.resolve(a, ea)
	vb, okB := s.resolve(b, eb)
	if okA && okB {
		ret.SemanticAvailable = true
		ret.Semantic = vector.CosineSimilarity(va, vb)
	}

	combined := ret.Lexical
	if ret.Semantic > combined {
		combined = ret.Semantic
		ret.Stage = StageSemantic
	}

	ret.Coverage = tokenCoverage(la, lb)
	floor := 0.0
	switch {
	case ret.Coverage == 1:
		floor = fullCoverageFloor
	case ret.Coverage > partialCoverageMin:
		floor = partialCoverageBase + partialCoverageRate*ret.Coverage
	}
	if floor > combined {
		combined = floor
		ret.Stage = StageCoverage
	}

	ret.Score = min(combined, 1)
	return ret
}

// SentenceEmbedding returns the sentence embedding of s, or false when no
// token of s is in the vocabulary.
func (s *Scorer) SentenceEmbedding(str string) ([]float32, bool) {
	if s.embedder == nil {
		return nil, false
	}
	return s.embedder.Embed(str)
}

// Embedding returns the sentence embedding of s encoded as a little-endian
// float32 BLOB, or false when no token of s is in the vocabulary.
func (s *Scorer) Embedding(str string) ([]byte, bool) {
	vec, ok := s.SentenceEmbedding(str)
	if !ok {
		return nil, false
	}
	return vector.EncodeEmbedding(vec), true
}

// ScoreBlobs is Score with embeddings in BLOB form. A nil or empty BLOB is
// absent; a BLOB whose size is not a multiple of 4 is an error.
func (s *Scorer) ScoreBlobs(a, b string, ea, eb []byte) (float64, error) {
	na, err := vector.FromBlob(ea)
	if err != nil {
		return 0, err
	}
	nb, err := vector.FromBlob(eb)
	if err != nil {
		return 0, err
	}
	return s.Score(a, b, na, nb), nil
}

func (s *Scorer) resolve(str string, supplied vector.NullEmbedding) ([]float32, bool) {
	if supplied.Valid {
		return supplied.Embedding, true
	}
	if s.embedder == nil {
		return nil, false
	}
	return s.embedder.Embed(str)
}

// tokenCoverage is the fraction of query tokens occurring anywhere in the
// lowercased candidate, as substrings.
func tokenCoverage(query, candidate string) float64 {
	tokens := text.Tokenize(query)
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, token := range tokens {
		if strings.Contains(candidate, token) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}
