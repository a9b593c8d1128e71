package index

import "github.com/viant/vec-outliers/vector"

// NoExclude is the sentinel passed to Search when no reference row should be
// excluded from the result set.
const NoExclude = -1

// Index answers k-nearest-neighbor queries over a fixed reference set.
// Implementations are read-only after Build; concurrent Search calls against
// a built index are safe.
type Index interface {
	// Build constructs the index from the reference matrix under the given
	// metric. The matrix must be non-empty with consistent row dimensions.
	Build(ref vector.Matrix, metric vector.Metric) error

	// Search returns up to k reference row indices with their distances to
	// the query, ordered by ascending distance; equidistant rows break ties
	// by ascending row index. exclude >= 0 omits that reference row (used
	// for self-scoring); pass NoExclude otherwise.
	Search(query []float32, k int, exclude int) (rows []int, dists []float64, err error)

	// Len reports the number of indexed reference rows.
	Len() int

	// Dim reports the reference dimensionality.
	Dim() int
}
