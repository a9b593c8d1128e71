package vptree

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/vec-outliers/vector"
)

// Index is a vantage-point tree that prunes nearest-neighbor search using the
// triangle inequality. Results match the brute-force backend: metrics that
// satisfy the triangle inequality (Euclidean, and any registered custom
// metric, which is assumed to) prune directly; cosine distance violates it,
// so the tree is built in angular chord space sqrt(2*(1-cos)) — the Euclidean
// distance between L2-normalized vectors, a true metric that preserves
// neighbor order — and reported distances are recomputed with the actual
// metric.
type Index struct {
	points   []vector.Point
	dim      int
	distance vector.DistanceFunc
	tree     func(a, b vector.Point) float64 // pruning-space distance
	root     *node
}

type node struct {
	row   int // index into points
	thr   float64
	left  *node
	right *node
}

// Build constructs the VP-tree over the reference matrix.
func (i *Index) Build(ref vector.Matrix, metric vector.Metric) error {
	if err := ref.Validate(); err != nil {
		return fmt.Errorf("vptree: %w", err)
	}
	fn := metric.Function()
	if fn == nil {
		return fmt.Errorf("vptree: unknown metric %q", metric)
	}
	i.points = ref.Points()
	i.dim = ref.Dim()
	i.distance = fn
	if metric == vector.MetricCosine {
		i.tree = func(a, b vector.Point) float64 {
			d := float64(fn(a, b))
			if d < 0 { // float fuzz on identical vectors
				d = 0
			}
			return math.Sqrt(2 * d)
		}
	} else {
		i.tree = func(a, b vector.Point) float64 { return float64(fn(a, b)) }
	}
	rows := make([]int, len(i.points))
	for r := range rows {
		rows[r] = r
	}
	i.root = i.build(rows)
	return nil
}

// build picks the last row as vantage point to avoid extra randomness, splits
// the rest at the median distance, and recurses.
func (i *Index) build(rows []int) *node {
	if len(rows) == 0 {
		return nil
	}
	vp := rows[len(rows)-1]
	rows = rows[:len(rows)-1]
	if len(rows) == 0 {
		return &node{row: vp}
	}
	dists := make([]float64, len(rows))
	for n, r := range rows {
		dists[n] = i.tree(i.points[vp], i.points[r])
	}
	order := make([]int, len(rows))
	for n := range order {
		order[n] = n
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })
	mid := len(dists) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(rows)-(mid+1))
	for rank, n := range order {
		if rank <= mid {
			left = append(left, rows[n])
		} else {
			right = append(right, rows[n])
		}
	}
	return &node{row: vp, thr: thr, left: i.build(left), right: i.build(right)}
}

// Len reports the number of indexed rows.
func (i *Index) Len() int { return len(i.points) }

// Dim reports the reference dimensionality.
func (i *Index) Dim() int { return i.dim }

// Search returns up to k reference rows ordered by ascending distance, ties
// broken by ascending row index.
func (i *Index) Search(query []float32, k int, exclude int) ([]int, []float64, error) {
	if i.dim == 0 {
		return nil, nil, fmt.Errorf("vptree: index not built")
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("vptree: query dim %d != index dim %d", len(query), i.dim)
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("vptree: k must be positive, got %d", k)
	}
	q := vector.NewPoint(query)
	type cand struct {
		row  int
		dist float64
	}
	heap := make([]cand, 0, k)
	bestR := math.Inf(1)
	worstAt := func() int {
		worst := 0
		for t := 1; t < len(heap); t++ {
			if heap[t].dist > heap[worst].dist {
				worst = t
			}
		}
		return worst
	}
	var search func(n *node)
	search = func(n *node) {
		if n == nil {
			return
		}
		d := i.tree(q, i.points[n.row])
		if n.row != exclude {
			if len(heap) < k {
				heap = append(heap, cand{row: n.row, dist: d})
				if len(heap) == k {
					bestR = heap[worstAt()].dist
				}
			} else if d < bestR {
				heap[worstAt()] = cand{row: n.row, dist: d}
				bestR = heap[worstAt()].dist
			}
		}
		// prune using triangle inequality
		if d < n.thr {
			if d-bestR <= n.thr {
				search(n.left)
			}
			if d+bestR >= n.thr {
				search(n.right)
			}
		} else {
			if d+bestR >= n.thr {
				search(n.right)
			}
			if d-bestR <= n.thr {
				search(n.left)
			}
		}
	}
	search(i.root)
	// Report distances in the caller's metric, not pruning space; the chord
	// map is strictly monotone so the neighbor set is unchanged.
	for n := range heap {
		heap[n].dist = float64(i.distance(q, i.points[heap[n].row]))
	}
	sort.Slice(heap, func(a, b int) bool {
		if heap[a].dist != heap[b].dist {
			return heap[a].dist < heap[b].dist
		}
		return heap[a].row < heap[b].row
	})
	rows := make([]int, len(heap))
	dists := make([]float64, len(heap))
	for n := range heap {
		rows[n] = heap[n].row
		dists[n] = heap[n].dist
	}
	return rows, dists, nil
}
