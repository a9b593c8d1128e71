package outlier

// Normalizer maps raw mean neighbor distances into scores in [0,1], one per
// input, with 1 meaning coincident with the neighborhood and 0 maximally
// distant. The exact curve is a policy choice, not a fixed constant; callers
// can swap it via WithNormalizer.
type Normalizer func(avgDists []float64) []float64

// BoundNormalizer returns score = 1 - d/bound for metrics with a known
// maximum distance (cosine distance is bounded by 2). Results are clamped to
// [0,1] to absorb floating-point fuzz.
func BoundNormalizer(bound float64) Normalizer {
	return func(avgDists []float64) []float64 {
		scores := make([]float64, len(avgDists))
		for i, d := range avgDists {
			scores[i] = clamp01(1 - d/bound)
		}
		return scores
	}
}

// BatchMaxNormalizer returns score = 1 - d/max(d) over the scored batch, for
// unbounded metrics. When every distance is 0 (identical vectors) the whole
// batch scores 1.0 rather than dividing by zero.
func BatchMaxNormalizer() Normalizer {
	return func(avgDists []float64) []float64 {
		var max float64
		for _, d := range avgDists {
			if d > max {
				max = d
			}
		}
		scores := make([]float64, len(avgDists))
		for i, d := range avgDists {
			if max == 0 {
				scores[i] = 1
				continue
			}
			scores[i] = clamp01(1 - d/max)
		}
		return scores
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
