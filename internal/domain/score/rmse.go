package score

import (
	"math"
)

// RMSE computes the root-mean-squared error between gold and predicted
// values. Lower is better.
func RMSE(gold, pred []float64) float64 {
	n := len(gold)
	if n == 0 {
		return math.NaN()
	}
	var sum float64
	for i := range gold {
		d := gold[i] - pred[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// NormalizedRMSE computes RMSE divided by the range of the gold values,
// making scores comparable across outcome scales. A zero-range gold
// sequence yields NaN.
func NormalizedRMSE(gold, pred []float64) float64 {
	if len(gold) == 0 {
		return math.NaN()
	}
	lo, hi := gold[0], gold[0]
	for _, v := range gold[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return math.NaN()
	}
	return RMSE(gold, pred) / (hi - lo)
}
