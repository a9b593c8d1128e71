package outlier

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/viant/vec-outliers/index/hnsw"
	"github.com/viant/vec-outliers/index/vptree"
	"github.com/viant/vec-outliers/vector"
)

// cluster samples n points around a center with the given spread, using an
// explicit seed so tests stay reproducible.
func cluster(n int, center []float32, spread float32, seed int64) vector.Matrix {
	rng := rand.New(rand.NewSource(seed))
	m := make(vector.Matrix, n)
	for i := range m {
		row := make([]float32, len(center))
		for j := range row {
			row[j] = center[j] + (rng.Float32()*2-1)*spread
		}
		m[i] = row
	}
	return m
}

func TestScoreLengthAndRange(t *testing.T) {
	ref := cluster(50, []float32{1, 1, 1}, 0.1, 1)
	queries := cluster(20, []float32{1, 1, 1}, 0.5, 2)

	for _, metric := range []vector.Metric{vector.MetricCosine, vector.MetricEuclidean} {
		s, err := NewScorer(ref, WithK(5), WithMetric(metric))
		if err != nil {
			t.Fatalf("NewScorer(%s) failed: %v", metric, err)
		}
		scores, err := s.Score(queries)
		if err != nil {
			t.Fatalf("Score(%s) failed: %v", metric, err)
		}
		if len(scores) != len(queries) {
			t.Fatalf("%s: got %d scores for %d queries", metric, len(scores), len(queries))
		}
		for i, sc := range scores {
			if sc < 0 || sc > 1 {
				t.Fatalf("%s: score[%d] = %v outside [0,1]", metric, i, sc)
			}
		}
	}
}

func TestScoreDeterminism(t *testing.T) {
	ref := cluster(40, []float32{0, 1, 0, 1}, 0.2, 3)
	queries := cluster(15, []float32{0, 1, 0, 1}, 0.4, 4)
	s, err := NewScorer(ref, WithK(7), WithParallelism(4))
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	first, err := s.Score(queries)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	second, err := s.Score(queries)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("score[%d] diverged across calls: %v != %v", i, first[i], second[i])
		}
	}
}

func TestMonotonicityFarVsCentroid(t *testing.T) {
	center := []float32{1, 0, 0}
	ref := cluster(30, center, 0.05, 5)
	queries := vector.Matrix{
		center,           // at the centroid of a tight cluster
		{-1, 0.5, -0.5},  // far from every reference vector
	}
	s, err := NewScorer(ref, WithK(10))
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	scores, err := s.Score(queries)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if scores[1] >= scores[0] {
		t.Fatalf("far query scored %v, centroid query %v; far must be strictly lower", scores[1], scores[0])
	}
}

func TestSelfScoreDegenerateIdenticalVectors(t *testing.T) {
	// n identical vectors with k = n-1: every neighbor distance is 0 and the
	// normalization must not divide by zero.
	row := []float32{0.5, 0.5, 0.5}
	n := 6
	ref := make(vector.Matrix, n)
	for i := range ref {
		ref[i] = row
	}
	// Euclidean distance between identical vectors is exactly 0, so the
	// batch-max normalization must return exactly 1.0 for every row.
	scores, err := SelfScore(ref, WithK(n-1), WithMetric(vector.MetricEuclidean))
	if err != nil {
		t.Fatalf("SelfScore(euclidean) failed: %v", err)
	}
	for i, sc := range scores {
		if sc != 1 {
			t.Fatalf("euclidean: score[%d] = %v, want 1.0", i, sc)
		}
	}
	// Cosine distance of identical vectors can carry float32 rounding fuzz.
	scores, err = SelfScore(ref, WithK(n-1), WithMetric(vector.MetricCosine))
	if err != nil {
		t.Fatalf("SelfScore(cosine) failed: %v", err)
	}
	for i, sc := range scores {
		if sc < 1-1e-6 || sc > 1 {
			t.Fatalf("cosine: score[%d] = %v, want 1.0 within 1e-6", i, sc)
		}
	}
}

func TestSelfScoreExcludesOwnRow(t *testing.T) {
	// One far-off row among a tight cluster: with self-matching the far row
	// would pair with itself at distance 0 and look typical. Exclusion must
	// leave it the lowest-scored row.
	ref := cluster(20, []float32{1, 1}, 0.05, 6)
	ref = append(ref, []float32{-5, 9})
	scores, err := SelfScore(ref, WithK(3), WithMetric(vector.MetricEuclidean))
	if err != nil {
		t.Fatalf("SelfScore failed: %v", err)
	}
	last := len(scores) - 1
	for i := 0; i < last; i++ {
		if scores[i] <= scores[last] {
			t.Fatalf("cluster row %d scored %v, not above the planted outlier's %v", i, scores[i], scores[last])
		}
	}
}

func TestEndToEndClusterScenario(t *testing.T) {
	// Reference: 100 vectors from cluster A. Query: 90 from A plus 10 from a
	// distant cluster B. All 10 B rows must land among the 10 lowest scores.
	ref := cluster(100, []float32{1, 0, 1, 0}, 0.1, 7)
	queries := cluster(90, []float32{1, 0, 1, 0}, 0.1, 8)
	queries = append(queries, cluster(10, []float32{-3, 4, -3, 4}, 0.1, 9)...)

	s, err := NewScorer(ref, WithK(10))
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	scores, err := s.Score(queries)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })
	for rank := 0; rank < 10; rank++ {
		if order[rank] < 90 {
			t.Fatalf("rank %d is query row %d from cluster A; want all 10 lowest from cluster B", rank, order[rank])
		}
	}
}

func TestAlternateBackendsAgreeOnExactSearch(t *testing.T) {
	ref := cluster(60, []float32{0.2, 0.8, 0.5}, 0.3, 10)
	queries := cluster(12, []float32{0.2, 0.8, 0.5}, 0.6, 11)

	base, err := NewScorer(ref, WithK(8))
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	want, err := base.Score(queries)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}

	vp, err := NewScorer(ref, WithK(8), WithBackend(&vptree.Index{}))
	if err != nil {
		t.Fatalf("NewScorer(vptree) failed: %v", err)
	}
	got, err := vp.Score(queries)
	if err != nil {
		t.Fatalf("Score(vptree) failed: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("vptree score[%d] = %v, brute-force %v", i, got[i], want[i])
		}
	}
}

func TestHNSWBackendScoresInRange(t *testing.T) {
	ref := cluster(80, []float32{1, 1, 0}, 0.2, 12)
	queries := cluster(10, []float32{1, 1, 0}, 0.4, 13)
	s, err := NewScorer(ref, WithK(5), WithBackend(&hnsw.Index{}))
	if err != nil {
		t.Fatalf("NewScorer(hnsw) failed: %v", err)
	}
	scores, err := s.Score(queries)
	if err != nil {
		t.Fatalf("Score(hnsw) failed: %v", err)
	}
	if len(scores) != len(queries) {
		t.Fatalf("got %d scores for %d queries", len(scores), len(queries))
	}
	for i, sc := range scores {
		if sc < 0 || sc > 1 {
			t.Fatalf("score[%d] = %v outside [0,1]", i, sc)
		}
	}
}

func TestScorerInputErrors(t *testing.T) {
	ref := cluster(10, []float32{1, 1}, 0.1, 14)

	if _, err := NewScorer(vector.Matrix{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty reference: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewScorer(ref, WithK(0)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("k=0: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewScorer(ref, WithK(10)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("k == rows: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewScorer(ref, WithMetric(vector.Metric("manhattan"))); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown metric: err = %v, want ErrInvalidInput", err)
	}
	if _, err := NewScorer(vector.Matrix{{1, 2}, {3}}, WithK(1)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ragged reference: err = %v, want ErrInvalidInput", err)
	}

	s, err := NewScorer(ref, WithK(3))
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	if _, err := s.Score(vector.Matrix{{1, 2, 3}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("dim mismatch: err = %v, want ErrDimensionMismatch", err)
	}
	if _, err := s.Score(vector.Matrix{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty queries: err = %v, want ErrInvalidInput", err)
	}
}
