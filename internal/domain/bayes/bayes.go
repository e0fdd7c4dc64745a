// Package bayes estimates posterior odds that one bootstrap score
// distribution is truly better than another.
package bayes

import (
	"fmt"
)

// Estimate is the result of comparing two score distributions.
type Estimate struct {
	// Factor is the posterior odds that the current distribution's
	// submission is better than the reference's.
	Factor float64
	// WinRate is the clamped fraction of paired draws favoring current.
	WinRate float64
}

// MeetsCutoff reports whether the estimate clears the given threshold.
func (e Estimate) MeetsCutoff(threshold float64) bool {
	return e.Factor >= threshold
}

// Compare pairs two equal-length score distributions by draw index and
// estimates the odds that current is truly better than previous under
// the given orientation. The win rate is clamped into the open interval
// (eps, 1-eps) with eps = 1/(n+1) so the odds stay finite and non-zero.
func Compare(currentDist, prevDist []float64, largerIsBetter bool) (Estimate, error) {
	n := len(currentDist)
	if n == 0 || n != len(prevDist) {
		return Estimate{}, fmt.Errorf("%w: %d vs %d draws", ErrLengthMismatch, n, len(prevDist))
	}

	wins := 0
	for i := 0; i < n; i++ {
		if better(currentDist[i], prevDist[i], largerIsBetter) {
			wins++
		}
	}

	p := float64(wins) / float64(n)
	eps := 1.0 / float64(n+1)
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}

	return Estimate{Factor: p / (1 - p), WinRate: p}, nil
}

func better(current, prev float64, largerIsBetter bool) bool {
	if largerIsBetter {
		return current > prev
	}
	return current < prev
}
