package engine

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/viant/sqlite-fuzzysem/fuzzy"
	"github.com/viant/sqlite-fuzzysem/text"
	"github.com/viant/sqlite-fuzzysem/vector"
	sqlite "modernc.org/sqlite"
)

// SQL function names registered by RegisterFunctions.
const (
	FuncFuzzySemantic  = "fuzzy_semantic"
	FuncFuzzyScore     = "fuzzy_score"
	FuncFuzzyEmbedding = "fuzzy_embedding"
	FuncLevenshtein    = "levenshtein"
	FuncVecCosine      = "vec_cosine"
)

var (
	registerOnce sync.Once
	registerErr  error
	activeScorer atomic.Pointer[fuzzy.Scorer]
)

// RegisterFunctions installs scorer as the scorer behind the fuzzy SQL
// functions and registers them with the driver so they are available on new
// connections opened after the first call:
//
//	fuzzy_semantic(a TEXT, b TEXT, emb_a BLOB, emb_b BLOB) REAL
//	fuzzy_score(a TEXT, b TEXT) REAL
//	fuzzy_embedding(text TEXT) BLOB
//	levenshtein(a TEXT, b TEXT) INTEGER
//	vec_cosine(a BLOB, b BLOB) REAL
//
// Driver registration is process-wide and happens once; later calls only
// swap the scorer. Existing open connections will not see new functions.
func RegisterFunctions(_ *sql.DB, scorer *fuzzy.Scorer) error {
	if scorer == nil {
		return fmt.Errorf("engine: scorer is nil")
	}
	activeScorer.Store(scorer)
	registerOnce.Do(func() {
		for _, fn := range []struct {
			name  string
			nArgs int32
			impl  func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error)
		}{
			{FuncFuzzySemantic, 4, fuzzySemanticImpl},
			{FuncFuzzyScore, 2, fuzzyScoreImpl},
			{FuncFuzzyEmbedding, 1, fuzzyEmbeddingImpl},
			{FuncLevenshtein, 2, levenshteinImpl},
			{FuncVecCosine, 2, vecCosineImpl},
		} {
			if err := sqlite.RegisterDeterministicScalarFunction(fn.name, fn.nArgs, fn.impl); err != nil {
				registerErr = fmt.Errorf("engine: register %s: %w", fn.name, err)
				return
			}
		}
	})
	return registerErr
}

func currentScorer() (*fuzzy.Scorer, error) {
	scorer := activeScorer.Load()
	if scorer == nil {
		return nil, fmt.Errorf("engine: no scorer registered")
	}
	return scorer, nil
}

func asText(name string, arg driver.Value) (string, error) {
	switch v := arg.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case int64, float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("%s: unsupported argument type %T; want TEXT", name, arg)
	}
}

func asEmbedding(name string, arg driver.Value) (vector.NullEmbedding, error) {
	switch v := arg.(type) {
	case nil:
		return vector.None(), nil
	case []byte:
		ret, err := vector.FromBlob(v)
		if err != nil {
			return vector.None(), fmt.Errorf("%s: %w", name, err)
		}
		return ret, nil
	default:
		return vector.None(), fmt.Errorf("%s: unsupported argument type %T for embedding; want BLOB", name, arg)
	}
}

func fuzzySemanticImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("%s: expected 4 arguments, got %d", FuncFuzzySemantic, len(args))
	}
	return score(FuncFuzzySemantic, args)
}

func fuzzyScoreImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments, got %d", FuncFuzzyScore, len(args))
	}
	return score(FuncFuzzyScore, args)
}

func score(name string, args []driver.Value) (driver.Value, error) {
	scorer, err := currentScorer()
	if err != nil {
		return nil, err
	}
	a, err := asText(name, args[0])
	if err != nil {
		return nil, err
	}
	b, err := asText(name, args[1])
	if err != nil {
		return nil, err
	}
	ea, eb := vector.None(), vector.None()
	if len(args) == 4 {
		if ea, err = asEmbedding(name, args[2]); err != nil {
			return nil, err
		}
		if eb, err = asEmbedding(name, args[3]); err != nil {
			return nil, err
		}
	}
	return scorer.Score(a, b, ea, eb), nil
}

func fuzzyEmbeddingImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: expected 1 argument, got %d", FuncFuzzyEmbedding, len(args))
	}
	if args[0] == nil {
		return nil, nil
	}
	scorer, err := currentScorer()
	if err != nil {
		return nil, err
	}
	s, err := asText(FuncFuzzyEmbedding, args[0])
	if err != nil {
		return nil, err
	}
	blob, ok := scorer.Embedding(s)
	if !ok {
		return nil, nil
	}
	return blob, nil
}

func levenshteinImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments, got %d", FuncLevenshtein, len(args))
	}
	a, err := asText(FuncLevenshtein, args[0])
	if err != nil {
		return nil, err
	}
	b, err := asText(FuncLevenshtein, args[1])
	if err != nil {
		return nil, err
	}
	return int64(text.Levenshtein(a, b)), nil
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments, got %d", FuncVecCosine, len(args))
	}
	a, err := asEmbedding(FuncVecCosine, args[0])
	if err != nil {
		return nil, err
	}
	b, err := asEmbedding(FuncVecCosine, args[1])
	if err != nil {
		return nil, err
	}
	if !a.Valid || !b.Valid {
		return nil, nil
	}
	return vector.CosineSimilarity(a.Embedding, b.Embedding), nil
}
