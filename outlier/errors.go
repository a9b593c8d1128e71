package outlier

import "errors"

// ErrInvalidInput flags malformed or out-of-range arguments: empty matrices,
// non-positive or over-large k, percentiles outside [0,100].
var ErrInvalidInput = errors.New("outlier: invalid input")

// ErrDimensionMismatch flags query vectors whose dimensionality differs from
// the reference set the index was built on.
var ErrDimensionMismatch = errors.New("outlier: dimension mismatch")
