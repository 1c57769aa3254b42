package blur

import "math"

// DefaultThreshold is the usual policy threshold for Check.
const DefaultThreshold = 1.0

// Verdict is the outcome of comparing a score against a policy threshold.
type Verdict struct {
	Score Score `json:"score"`

	// Rounded is the calibrated score rounded to two decimals, the value
	// compared against Threshold.
	Rounded   float64 `json:"rounded"`
	Threshold float64 `json:"threshold"`
	Blurry    bool    `json:"blurry"`
}

// Check judges score against threshold: an image is blurry when its
// calibrated score, rounded to two decimals, exceeds threshold.
func Check(score Score, threshold float64) Verdict {
	rounded := math.Round(score.AvgEdgeWidthPerc*100) / 100
	return Verdict{
		Score:     score,
		Rounded:   rounded,
		Threshold: threshold,
		Blurry:    rounded > threshold,
	}
}
