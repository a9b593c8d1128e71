package outlier

import (
	"fmt"
	"math"
	"sort"
)

// PercentileThreshold returns the value at the given percentile of the score
// distribution, linearly interpolating between the two bracketing order
// statistics when the percentile falls between ranks. Percentile 0 yields the
// minimum, 100 the maximum. Scores below a threshold computed on a trusted
// reference distribution are classified as outliers.
func PercentileThreshold(scores []float64, percentile float64) (float64, error) {
	if len(scores) == 0 {
		return 0, fmt.Errorf("%w: empty scores", ErrInvalidInput)
	}
	if percentile < 0 || percentile > 100 {
		return 0, fmt.Errorf("%w: percentile %v outside [0,100]", ErrInvalidInput, percentile)
	}
	sorted := append([]float64(nil), scores...)
	sort.Float64s(sorted)
	rank := percentile / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, nil
}
