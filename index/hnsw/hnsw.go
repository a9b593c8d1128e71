package hnsw

import (
	"fmt"
	"sort"

	"github.com/coder/hnsw"
	"github.com/viant/vec-outliers/vector"
)

// Index wraps a coder/hnsw graph keyed by reference row. Retrieval is
// approximate: the graph proposes candidates and the exact metric distance is
// recomputed for ranking. Use the brute-force or vptree backends when exact
// neighbor sets are required.
type Index struct {
	graph    *hnsw.Graph[int]
	points   []vector.Point
	dim      int
	distance vector.DistanceFunc
}

// Build inserts every reference row into the HNSW graph.
func (i *Index) Build(ref vector.Matrix, metric vector.Metric) error {
	if err := ref.Validate(); err != nil {
		return fmt.Errorf("hnsw: %w", err)
	}
	fn := metric.Function()
	if fn == nil {
		return fmt.Errorf("hnsw: unknown metric %q", metric)
	}
	g := hnsw.NewGraph[int]()
	switch metric {
	case vector.MetricEuclidean:
		g.Distance = hnsw.EuclideanDistance
	default:
		g.Distance = hnsw.CosineDistance
	}
	for row := range ref {
		g.Add(hnsw.MakeNode(row, ref[row]))
	}
	i.graph = g
	i.points = ref.Points()
	i.dim = ref.Dim()
	i.distance = fn
	return nil
}

// Len reports the number of indexed rows.
func (i *Index) Len() int { return len(i.points) }

// Dim reports the reference dimensionality.
func (i *Index) Dim() int { return i.dim }

// Search asks the graph for k+1 candidates (so an excluded self-match can be
// dropped), reranks them by exact metric distance, and returns up to k rows.
func (i *Index) Search(query []float32, k int, exclude int) ([]int, []float64, error) {
	if i.graph == nil {
		return nil, nil, fmt.Errorf("hnsw: index not built")
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("hnsw: query dim %d != index dim %d", len(query), i.dim)
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("hnsw: k must be positive, got %d", k)
	}
	q := vector.NewPoint(query)
	candidates := i.graph.Search(query, k+1)
	type cand struct {
		row  int
		dist float64
	}
	cands := make([]cand, 0, len(candidates))
	for _, n := range candidates {
		if n.Key == exclude {
			continue
		}
		cands = append(cands, cand{row: n.Key, dist: float64(i.distance(q, i.points[n.Key]))})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].row < cands[b].row
	})
	if k > len(cands) {
		k = len(cands)
	}
	rows := make([]int, k)
	dists := make([]float64, k)
	for n := 0; n < k; n++ {
		rows[n] = cands[n].row
		dists[n] = cands[n].dist
	}
	return rows, dists, nil
}
