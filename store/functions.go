package store

import (
	"database/sql/driver"
	"fmt"

	sqlite "modernc.org/sqlite"

	"github.com/viant/vec-outliers/vector"
)

// RegisterDistanceFunctions registers vec_cosine and vec_l2 scalar functions
// with the driver so they are available on connections opened after this
// call. Both take two embedding BLOBs; vec_cosine returns the cosine distance
// (1 - similarity), vec_l2 the Euclidean distance. Useful for eyeballing
// neighbor distances of stored sets directly in SQL.
func RegisterDistanceFunctions() {
	// Idempotent registration; the driver rejects duplicates.
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosineImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2Impl)
}

func asEmbedding(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return vector.DecodeEmbedding(v, 0)
	default:
		return nil, fmt.Errorf("store: unsupported argument type %T for embedding; want BLOB", arg)
	}
}

func embeddingArgs(name string, args []driver.Value) (vector.Point, vector.Point, bool, error) {
	if len(args) != 2 {
		return vector.Point{}, vector.Point{}, false, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return vector.Point{}, vector.Point{}, false, err
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return vector.Point{}, vector.Point{}, false, err
	}
	if a == nil || b == nil {
		return vector.Point{}, vector.Point{}, false, nil
	}
	if len(a) != len(b) {
		return vector.Point{}, vector.Point{}, false, fmt.Errorf("%s: embedding dims differ: %d vs %d", name, len(a), len(b))
	}
	return vector.NewPoint(a), vector.NewPoint(b), true, nil
}

func vecCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := embeddingArgs("vec_cosine", args)
	if err != nil || !ok {
		return nil, err
	}
	return float64(vector.CosineDistance(a, b)), nil
}

func vecL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, ok, err := embeddingArgs("vec_l2", args)
	if err != nil || !ok {
		return nil, err
	}
	return float64(vector.EuclideanDistance(a, b)), nil
}
