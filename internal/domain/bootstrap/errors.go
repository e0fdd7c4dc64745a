package bootstrap

import "errors"

// Sentinel kinds for sampler errors.
var (
	ErrInvalidDrawCount = errors.New("invalid draw count")
	ErrEmptySample      = errors.New("empty paired sample")
	ErrScoreComputation = errors.New("score computation failed")
)
