package vector

import (
	"fmt"
	"sync"

	"github.com/viant/vec/search"
)

// Metric enumerates supported distance metrics.
type Metric string

const (
	// MetricCosine is the cosine distance (1 - cosine similarity), bounded in [0,2].
	MetricCosine Metric = "cosine"
	// MetricEuclidean is the Euclidean (L2) distance, unbounded.
	MetricEuclidean Metric = "euclidean"
)

// DistanceFunc computes the distance between two points. A valid distance is
// non-negative, symmetric, and zero for identical points.
type DistanceFunc func(a, b Point) float32

type customMetric struct {
	fn      DistanceFunc
	bound   float64
	bounded bool
}

var (
	customMu      sync.RWMutex
	customMetrics = map[Metric]customMetric{}
)

// RegisterMetric associates a name with a caller-supplied distance function.
// bounded metrics declare their maximum attainable distance so scores can be
// normalized without a batch statistic. Register during init; registration is
// not synchronized against concurrent lookups from in-flight scoring.
func RegisterMetric(name Metric, fn DistanceFunc, bound float64, bounded bool) error {
	if name == MetricCosine || name == MetricEuclidean {
		return fmt.Errorf("vector: metric %q is built in", name)
	}
	if fn == nil {
		return fmt.Errorf("vector: nil distance function for metric %q", name)
	}
	customMu.Lock()
	defer customMu.Unlock()
	customMetrics[name] = customMetric{fn: fn, bound: bound, bounded: bounded}
	return nil
}

// Function resolves the callable distance implementation, or nil for an
// unknown metric.
func (m Metric) Function() DistanceFunc {
	switch m {
	case MetricCosine:
		return CosineDistance
	case MetricEuclidean:
		return EuclideanDistance
	}
	customMu.RLock()
	defer customMu.RUnlock()
	if c, ok := customMetrics[m]; ok {
		return c.fn
	}
	return nil
}

// Bound returns the maximum attainable distance for the metric and whether
// the metric is bounded at all. Cosine distance lives in [0,2]; Euclidean
// distance has no fixed upper bound.
func (m Metric) Bound() (float64, bool) {
	switch m {
	case MetricCosine:
		return 2, true
	case MetricEuclidean:
		return 0, false
	}
	customMu.RLock()
	defer customMu.RUnlock()
	if c, ok := customMetrics[m]; ok && c.bounded {
		return c.bound, true
	}
	return 0, false
}

// Point is a vector with a cached magnitude so cosine distance can skip
// recomputing norms on every comparison.
type Point struct {
	Vector    []float32
	Magnitude float32
}

// NewPoint builds a Point, precomputing the vector magnitude.
func NewPoint(vec []float32) Point {
	return Point{Vector: vec, Magnitude: search.Float32s(vec).Magnitude()}
}

// CosineDistance returns the cosine distance (1 - cosine similarity) between
// two points. The cached magnitudes guard the degenerate case: a
// zero-magnitude vector has no direction, so its distance to anything is 1.
func CosineDistance(a, b Point) float32 {
	va := search.Float32s(a.Vector)
	ma := a.Magnitude
	if ma == 0 {
		ma = va.Magnitude()
	}
	mb := b.Magnitude
	if mb == 0 {
		mb = search.Float32s(b.Vector).Magnitude()
	}
	if ma == 0 || mb == 0 {
		return 1
	}
	return va.CosineDistance(b.Vector)
}

// EuclideanDistance returns the Euclidean distance between two points.
func EuclideanDistance(a, b Point) float32 {
	return search.Float32s(a.Vector).EuclideanDistance(b.Vector)
}
