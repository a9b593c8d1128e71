package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/vec-outliers/vector"
)

// Index is a brute-force nearest-neighbor index: every query scans all
// reference points. Exact, deterministic, and the default backend.
type Index struct {
	points   []vector.Point
	dim      int
	distance vector.DistanceFunc
}

// Build loads the reference matrix and precomputes point magnitudes.
func (i *Index) Build(ref vector.Matrix, metric vector.Metric) error {
	if err := ref.Validate(); err != nil {
		return fmt.Errorf("bruteforce: %w", err)
	}
	fn := metric.Function()
	if fn == nil {
		return fmt.Errorf("bruteforce: unknown metric %q", metric)
	}
	i.points = ref.Points()
	i.dim = ref.Dim()
	i.distance = fn
	return nil
}

// Len reports the number of indexed rows.
func (i *Index) Len() int { return len(i.points) }

// Dim reports the reference dimensionality.
func (i *Index) Dim() int { return i.dim }

// Search scans all reference points and returns the k nearest, ordered by
// ascending distance with ties broken by ascending row index.
func (i *Index) Search(query []float32, k int, exclude int) ([]int, []float64, error) {
	if i.dim == 0 {
		return nil, nil, fmt.Errorf("bruteforce: index not built")
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("bruteforce: k must be positive, got %d", k)
	}
	q := vector.NewPoint(query)
	type scored struct {
		row  int
		dist float64
	}
	scoreds := make([]scored, 0, len(i.points))
	for row := range i.points {
		if row == exclude {
			continue
		}
		scoreds = append(scoreds, scored{row: row, dist: float64(i.distance(q, i.points[row]))})
	}
	sort.Slice(scoreds, func(a, b int) bool {
		if scoreds[a].dist != scoreds[b].dist {
			return scoreds[a].dist < scoreds[b].dist
		}
		return scoreds[a].row < scoreds[b].row
	})
	if k > len(scoreds) {
		k = len(scoreds)
	}
	rows := make([]int, k)
	dists := make([]float64, k)
	for n := 0; n < k; n++ {
		rows[n] = scoreds[n].row
		dists[n] = scoreds[n].dist
	}
	return rows, dists, nil
}
