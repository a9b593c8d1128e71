package outlier

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/viant/vec-outliers/index"
	"github.com/viant/vec-outliers/index/bruteforce"
	"github.com/viant/vec-outliers/vector"
)

// DefaultK is the neighbor count used when no override is supplied.
const DefaultK = 10

// Option customizes a Scorer.
type Option func(*options)

type options struct {
	k           int
	metric      vector.Metric
	backend     index.Index
	normalize   Normalizer
	parallelism int
}

// WithK sets the neighbor count. Must be positive and smaller than the number
// of reference rows (self queries leave only n-1 candidates).
func WithK(k int) Option { return func(o *options) { o.k = k } }

// WithMetric selects the distance metric. Default is cosine distance.
func WithMetric(metric vector.Metric) Option { return func(o *options) { o.metric = metric } }

// WithBackend supplies an unbuilt index backend; the scorer builds it over
// the reference set. Default is the brute-force backend.
func WithBackend(idx index.Index) Option { return func(o *options) { o.backend = idx } }

// WithNormalizer overrides the distance-to-score normalization curve.
func WithNormalizer(n Normalizer) Option { return func(o *options) { o.normalize = n } }

// WithParallelism caps the number of concurrent neighbor searches during
// scoring. Default is GOMAXPROCS.
func WithParallelism(n int) Option { return func(o *options) { o.parallelism = n } }

// Scorer quantifies how atypical query vectors are relative to a fixed
// reference set. The underlying index is immutable after construction, so any
// number of Score calls may run concurrently.
type Scorer struct {
	index       index.Index
	reference   vector.Matrix
	metric      vector.Metric
	k           int
	normalize   Normalizer
	parallelism int
}

// NewScorer builds a nearest-neighbor index over the reference matrix and
// returns a Scorer ready for Score and SelfScore calls.
func NewScorer(reference vector.Matrix, opts ...Option) (*Scorer, error) {
	if err := reference.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	o := options{k: DefaultK, metric: vector.MetricCosine, parallelism: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, o.k)
	}
	if o.k >= reference.Len() {
		return nil, fmt.Errorf("%w: k=%d with %d reference rows: self queries leave only %d candidates",
			ErrInvalidInput, o.k, reference.Len(), reference.Len()-1)
	}
	if o.metric.Function() == nil {
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, o.metric)
	}
	if o.parallelism <= 0 {
		o.parallelism = 1
	}
	if o.normalize == nil {
		if bound, ok := o.metric.Bound(); ok {
			o.normalize = BoundNormalizer(bound)
		} else {
			o.normalize = BatchMaxNormalizer()
		}
	}
	idx := o.backend
	if idx == nil {
		idx = &bruteforce.Index{}
	}
	if err := idx.Build(reference, o.metric); err != nil {
		return nil, err
	}
	return &Scorer{
		index:       idx,
		reference:   reference,
		metric:      o.metric,
		k:           o.k,
		normalize:   o.normalize,
		parallelism: o.parallelism,
	}, nil
}

// K returns the configured neighbor count.
func (s *Scorer) K() int { return s.k }

// Metric returns the configured distance metric.
func (s *Scorer) Metric() vector.Metric { return s.metric }

// Score computes one outlier score per query row, in input order, each in
// [0,1] with larger meaning more typical. Pure: identical inputs yield
// identical outputs.
func (s *Scorer) Score(queries vector.Matrix) ([]float64, error) {
	return s.score(queries, false)
}

// SelfScore scores the reference set against itself, excluding each row from
// its own neighborhood. This is the path that surfaces naturally occurring
// outliers within a single set.
func (s *Scorer) SelfScore() ([]float64, error) {
	return s.score(s.reference, true)
}

func (s *Scorer) score(queries vector.Matrix, self bool) ([]float64, error) {
	if err := queries.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if queries.Dim() != s.index.Dim() {
		return nil, fmt.Errorf("%w: query dim %d, reference dim %d", ErrDimensionMismatch, queries.Dim(), s.index.Dim())
	}
	avgDists := make([]float64, queries.Len())
	var group errgroup.Group
	group.SetLimit(s.parallelism)
	for i := range queries {
		i := i
		group.Go(func() error {
			exclude := index.NoExclude
			if self {
				exclude = i
			}
			_, dists, err := s.index.Search(queries[i], s.k, exclude)
			if err != nil {
				return err
			}
			if len(dists) < s.k {
				return fmt.Errorf("%w: only %d neighbors available for k=%d", ErrInvalidInput, len(dists), s.k)
			}
			var sum float64
			for _, d := range dists {
				sum += d
			}
			avgDists[i] = sum / float64(len(dists))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return s.normalize(avgDists), nil
}

// SelfScore builds a Scorer over the reference set and scores it against
// itself with self-match exclusion enabled.
func SelfScore(reference vector.Matrix, opts ...Option) ([]float64, error) {
	s, err := NewScorer(reference, opts...)
	if err != nil {
		return nil, err
	}
	return s.SelfScore()
}
