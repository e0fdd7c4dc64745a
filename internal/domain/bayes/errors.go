package bayes

import "errors"

// Sentinel kinds for estimator errors.
var (
	ErrLengthMismatch = errors.New("distribution length mismatch")
)
