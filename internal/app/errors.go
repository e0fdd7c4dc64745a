package app

import "errors"

// Sentinel kinds for service configuration errors.
var (
	ErrMissingGoldStandard = errors.New("missing gold standard")
)
