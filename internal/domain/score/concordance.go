package score

import (
	"math"

	"github.com/vpchung/challengescoring/internal/domain/pair"
)

// Concordance computes Harrell's C-statistic between predicted risk and
// observed time-to-event outcomes. A pair of subjects is usable when the
// earlier time belongs to a subject whose event occurred; the pair is
// concordant when the subject with the earlier event carries the higher
// predicted risk. Tied risks count half. No usable pairs yields NaN.
func Concordance(outcomes []pair.Outcome, pred []float64) float64 {
	var concordant, usable float64
	for i := 0; i < len(outcomes); i++ {
		for j := i + 1; j < len(outcomes); j++ {
			first, second := i, j
			if outcomes[second].Time < outcomes[first].Time {
				first, second = second, first
			}
			if outcomes[first].Time == outcomes[second].Time || !outcomes[first].Event {
				// Tied times, or the earlier subject was censored: the
				// ordering of events is unknown and the pair is unusable.
				continue
			}
			usable++
			switch {
			case pred[first] > pred[second]:
				concordant++
			case pred[first] == pred[second]:
				concordant += 0.5
			}
		}
	}
	if usable == 0 {
		return math.NaN()
	}
	return concordant / usable
}
