package score

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrUnknownMetric  = errors.New("unknown metric")
	ErrDuplicateName  = errors.New("metric already registered")
	ErrSampleVariant  = errors.New("wrong sample variant")
	ErrLengthMismatch = errors.New("sequence length mismatch")
)
