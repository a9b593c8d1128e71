package vector

import "fmt"

// Matrix is an ordered sequence of fixed-dimension embeddings: rows are
// examples, columns are dimensions. A Matrix is owned by the caller and is
// treated as immutable once handed to an index or scorer.
type Matrix [][]float32

// Dim returns the dimensionality of the matrix, i.e. the length of its first
// row, or 0 for an empty matrix.
func (m Matrix) Dim() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Len returns the number of rows.
func (m Matrix) Len() int { return len(m) }

// Validate checks that the matrix is non-empty and that every row has the
// same, non-zero dimension.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("vector: empty matrix")
	}
	dim := len(m[0])
	if dim == 0 {
		return fmt.Errorf("vector: zero-dimension row at index 0")
	}
	for i := range m {
		if len(m[i]) != dim {
			return fmt.Errorf("vector: inconsistent row dims: row %d has %d, want %d", i, len(m[i]), dim)
		}
	}
	return nil
}

// Points converts the matrix rows into Points with precomputed magnitudes.
func (m Matrix) Points() []Point {
	points := make([]Point, len(m))
	for i := range m {
		points[i] = NewPoint(m[i])
	}
	return points
}
