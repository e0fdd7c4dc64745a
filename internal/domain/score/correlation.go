package score

import (
	"math"
	"sort"
)

// Pearson computes the linear correlation coefficient between gold and
// predicted values. Degenerate inputs (fewer than two pairs, or zero
// variance on either side) yield NaN, which the sampler rejects.
func Pearson(gold, pred []float64) float64 {
	n := len(gold)
	if n < 2 {
		return math.NaN()
	}
	mg, mp := mean(gold), mean(pred)
	var num, dg2, dp2 float64
	for i := range gold {
		dg := gold[i] - mg
		dp := pred[i] - mp
		num += dg * dp
		dg2 += dg * dg
		dp2 += dp * dp
	}
	denom := math.Sqrt(dg2 * dp2)
	if denom == 0 {
		return math.NaN()
	}
	return num / denom
}

// Spearman computes the rank correlation coefficient: Pearson over
// fractional ranks, with ties assigned their average rank.
func Spearman(gold, pred []float64) float64 {
	return Pearson(ranks(gold), ranks(pred))
}

// ranks returns 1-based fractional ranks, averaging over ties.
func ranks(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranked := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Average rank for the tie run [i, j].
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranked[order[k]] = avg
		}
		i = j + 1
	}
	return ranked
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
