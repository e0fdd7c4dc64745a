// Package score defines the pluggable scoring metric contract and the
// built-in metric library.
//
// A Metric couples a score function with its orientation: whether a
// larger value means a better prediction. Score functions are pure
// functions of an aligned paired sample and must return a finite value.
package score

import (
	"fmt"
	"math"

	"github.com/vpchung/challengescoring/internal/domain/pair"
)

// Func computes a scalar score from an aligned paired sample.
type Func func(s *pair.Sample) (float64, error)

// Metric is a named score function with an orientation.
type Metric struct {
	Name           string
	LargerIsBetter bool
	Score          Func
}

// Scalar adapts a plain (gold, pred) function to the Func contract,
// rejecting survival samples.
func Scalar(fn func(gold, pred []float64) float64) Func {
	return func(s *pair.Sample) (float64, error) {
		if s.Survival() {
			return 0, fmt.Errorf("%w: metric needs scalar gold values", ErrSampleVariant)
		}
		if len(s.Gold) != len(s.Pred) {
			return 0, fmt.Errorf("%w: %d gold vs %d predicted", ErrLengthMismatch, len(s.Gold), len(s.Pred))
		}
		return fn(s.Gold, s.Pred), nil
	}
}

// Survival adapts an outcome-based function to the Func contract,
// rejecting scalar samples.
func Survival(fn func(outcomes []pair.Outcome, pred []float64) float64) Func {
	return func(s *pair.Sample) (float64, error) {
		if !s.Survival() {
			return 0, fmt.Errorf("%w: metric needs survival outcomes", ErrSampleVariant)
		}
		if len(s.Surv) != len(s.Pred) {
			return 0, fmt.Errorf("%w: %d outcomes vs %d predicted", ErrLengthMismatch, len(s.Surv), len(s.Pred))
		}
		return fn(s.Surv, s.Pred), nil
	}
}

// IsFinite reports whether a score is a usable finite number.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
