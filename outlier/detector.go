package outlier

import "github.com/viant/vec-outliers/vector"

// Detector packages the calibration workflow: self-score a trusted reference
// set, fix a percentile threshold on that score distribution, then flag rows
// of later query sets whose score falls below the threshold. Scores are only
// comparable against the same reference index and metric, so the detector
// keeps both fixed after Fit.
type Detector struct {
	scorer     *Scorer
	percentile float64
	threshold  float64
}

// Fit builds a scorer over the trusted reference set, self-scores it, and
// calibrates the outlier threshold at the given percentile of the resulting
// distribution.
func Fit(reference vector.Matrix, percentile float64, opts ...Option) (*Detector, error) {
	scorer, err := NewScorer(reference, opts...)
	if err != nil {
		return nil, err
	}
	scores, err := scorer.SelfScore()
	if err != nil {
		return nil, err
	}
	threshold, err := PercentileThreshold(scores, percentile)
	if err != nil {
		return nil, err
	}
	return &Detector{scorer: scorer, percentile: percentile, threshold: threshold}, nil
}

// Threshold returns the calibrated score cutoff.
func (d *Detector) Threshold() float64 { return d.threshold }

// Percentile returns the percentile the threshold was calibrated at.
func (d *Detector) Percentile() float64 { return d.percentile }

// Detect scores the query set against the fitted reference and flags rows
// whose score is strictly below the calibrated threshold.
func (d *Detector) Detect(queries vector.Matrix) (scores []float64, outliers []bool, err error) {
	scores, err = d.scorer.Score(queries)
	if err != nil {
		return nil, nil, err
	}
	outliers = make([]bool, len(scores))
	for i, s := range scores {
		outliers[i] = s < d.threshold
	}
	return scores, outliers, nil
}
