// Package pair aligns a submission with a gold standard into paired samples.
//
// A Sample holds the matched (gold, predicted) values sharing an
// identifier. Rows present on only one side, and rows with a missing or
// non-finite value on either side, are dropped. Samples come in two
// variants: scalar gold values, and survival outcomes carrying a
// (time, event) pair per row.
package pair

import (
	"fmt"

	"github.com/vpchung/challengescoring/internal/domain/frame"
)

// Outcome is a survival observation: follow-up time and whether the
// event occurred before censoring.
type Outcome struct {
	Time  float64
	Event bool
}

// Sample is an aligned paired sample. For scalar samples Gold is set;
// for survival samples Surv is set. Pred is always set and has the same
// length as the gold side.
type Sample struct {
	Gold []float64
	Surv []Outcome
	Pred []float64
}

// Len returns the number of aligned pairs.
func (s *Sample) Len() int {
	return len(s.Pred)
}

// Survival reports whether this is the survival variant.
func (s *Sample) Survival() bool {
	return s.Surv != nil
}

// Take builds a resampled Sample from row indices. Indices may repeat;
// each must be in [0, Len()).
func (s *Sample) Take(indices []int) *Sample {
	out := &Sample{Pred: make([]float64, len(indices))}
	if s.Survival() {
		out.Surv = make([]Outcome, len(indices))
		for i, idx := range indices {
			out.Surv[i] = s.Surv[idx]
			out.Pred[i] = s.Pred[idx]
		}
		return out
	}
	out.Gold = make([]float64, len(indices))
	for i, idx := range indices {
		out.Gold[i] = s.Gold[idx]
		out.Pred[i] = s.Pred[idx]
	}
	return out
}

// Columns names the frame columns consumed by the builder.
type Columns struct {
	// ID lists the identifier column(s). Defaults to ["id"].
	ID []string
	// Prediction names the predicted-value column in the submission.
	Prediction string
	// Gold names the true-value column in the gold standard (scalar variant).
	Gold string
	// Time and Event name the survival outcome columns (survival variant).
	Time  string
	Event string
}

func (c Columns) ids() []string {
	if len(c.ID) == 0 {
		return []string{"id"}
	}
	return c.ID
}

// Build aligns a submission with a scalar gold standard. Row order
// follows the gold standard. Returns ErrInvalidSubmission when no usable
// pairs remain.
func Build(sub, gold *frame.Frame, cols Columns) (*Sample, error) {
	preds, err := predictionsByKey(sub, cols)
	if err != nil {
		return nil, err
	}

	goldKeys, ok := gold.Keys(cols.ids())
	if !ok {
		return nil, fmt.Errorf("%w: gold standard is missing identifier columns %s", ErrMissingColumns, cols.ids())
	}
	goldVals, ok := gold.Floats(cols.Gold)
	if !ok {
		return nil, fmt.Errorf("%w: gold standard is missing column %q", ErrMissingColumns, cols.Gold)
	}

	s := &Sample{}
	for i, key := range goldKeys {
		p, matched := preds[key]
		if !matched || frame.IsMissing(p) || frame.IsMissing(goldVals[i]) {
			continue
		}
		s.Gold = append(s.Gold, goldVals[i])
		s.Pred = append(s.Pred, p)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: no identifiers in common with the gold standard", ErrInvalidSubmission)
	}
	return s, nil
}

// BuildSurvival aligns a submission with a survival gold standard whose
// rows carry (time, event) outcomes. Row order follows the gold standard.
func BuildSurvival(sub, gold *frame.Frame, cols Columns) (*Sample, error) {
	preds, err := predictionsByKey(sub, cols)
	if err != nil {
		return nil, err
	}

	goldKeys, ok := gold.Keys(cols.ids())
	if !ok {
		return nil, fmt.Errorf("%w: gold standard is missing identifier columns %s", ErrMissingColumns, cols.ids())
	}
	times, ok := gold.Floats(cols.Time)
	if !ok {
		return nil, fmt.Errorf("%w: gold standard is missing column %q", ErrMissingColumns, cols.Time)
	}
	events, ok := gold.Floats(cols.Event)
	if !ok {
		return nil, fmt.Errorf("%w: gold standard is missing column %q", ErrMissingColumns, cols.Event)
	}

	s := &Sample{}
	for i, key := range goldKeys {
		p, matched := preds[key]
		if !matched || frame.IsMissing(p) || frame.IsMissing(times[i]) || frame.IsMissing(events[i]) {
			continue
		}
		s.Surv = append(s.Surv, Outcome{Time: times[i], Event: events[i] != 0})
		s.Pred = append(s.Pred, p)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%w: no identifiers in common with the gold standard", ErrInvalidSubmission)
	}
	return s, nil
}

// predictionsByKey indexes the submission's predicted values by row key.
func predictionsByKey(sub *frame.Frame, cols Columns) (map[string]float64, error) {
	keys, ok := sub.Keys(cols.ids())
	if !ok {
		return nil, fmt.Errorf("%w: submission is missing identifier columns %s", ErrMissingColumns, cols.ids())
	}
	vals, ok := sub.Floats(cols.Prediction)
	if !ok {
		return nil, fmt.Errorf("%w: submission is missing column %q", ErrMissingColumns, cols.Prediction)
	}
	preds := make(map[string]float64, len(keys))
	for i, key := range keys {
		preds[key] = vals[i]
	}
	return preds, nil
}
