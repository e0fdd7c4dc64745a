package frame

import (
	"fmt"
	"sort"
	"strings"
)

// Problem describes one structural defect found in a submission.
type Problem struct {
	// Kind groups problems for programmatic handling.
	Kind ProblemKind
	// Names are the offending column names or identifiers.
	Names []string
}

// ProblemKind enumerates the classes of structural defects.
type ProblemKind string

const (
	ProblemDuplicateColumns    ProblemKind = "duplicate_columns"
	ProblemMissingColumns      ProblemKind = "missing_columns"
	ProblemDuplicateIdentifier ProblemKind = "duplicate_identifiers"
	ProblemBadPredictions      ProblemKind = "bad_prediction_values"
)

// String renders the problem as a human-readable message with the
// offending names bracketed and comma-joined.
func (p Problem) String() string {
	names := bracketJoin(p.Names)
	switch p.Kind {
	case ProblemDuplicateColumns:
		return fmt.Sprintf("submission has duplicated columns: %s", names)
	case ProblemMissingColumns:
		return fmt.Sprintf("submission is missing required columns: %s", names)
	case ProblemDuplicateIdentifier:
		return fmt.Sprintf("submission has duplicated identifiers: %s", names)
	case ProblemBadPredictions:
		return fmt.Sprintf("submission has missing or non-finite predictions for: %s", names)
	default:
		return fmt.Sprintf("submission problem: %s", names)
	}
}

func bracketJoin(names []string) string {
	return "[" + strings.Join(names, ", ") + "]"
}

// Check inspects a submission frame for structural problems: duplicated
// columns, missing required columns, duplicated identifiers, and missing
// or non-finite prediction values. A nil return means the submission is
// structurally valid.
func Check(sub *Frame, idColumns []string, predictionColumn string) []Problem {
	var problems []Problem

	if dup := duplicateNames(sub.Names()); len(dup) > 0 {
		problems = append(problems, Problem{Kind: ProblemDuplicateColumns, Names: dup})
	}

	var missing []string
	for _, name := range idColumns {
		if !sub.Has(name) {
			missing = append(missing, name)
		}
	}
	if !sub.Has(predictionColumn) {
		missing = append(missing, predictionColumn)
	}
	if len(missing) > 0 {
		problems = append(problems, Problem{Kind: ProblemMissingColumns, Names: missing})
		// Remaining checks need the columns that are missing.
		return problems
	}

	if keys, ok := sub.Keys(idColumns); ok {
		if dup := duplicateNames(keys); len(dup) > 0 {
			problems = append(problems, Problem{Kind: ProblemDuplicateIdentifier, Names: dup})
		}

		if preds, ok := sub.Floats(predictionColumn); ok {
			var bad []string
			for i, v := range preds {
				if IsMissing(v) {
					bad = append(bad, keys[i])
				}
			}
			if len(bad) > 0 {
				problems = append(problems, Problem{Kind: ProblemBadPredictions, Names: bad})
			}
		}
	}

	return problems
}

// CheckError wraps the problems found by Check into a single error, or
// returns nil when the submission is valid.
func CheckError(sub *Frame, idColumns []string, predictionColumn string) error {
	problems := Check(sub, idColumns, predictionColumn)
	if len(problems) == 0 {
		return nil
	}
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.String()
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

// duplicateNames returns the values that appear more than once, each
// reported once, in sorted order.
func duplicateNames(names []string) []string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	var dup []string
	for n, count := range seen {
		if count > 1 {
			dup = append(dup, n)
		}
	}
	sort.Strings(dup)
	return dup
}
