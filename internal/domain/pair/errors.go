package pair

import "errors"

// Sentinel kinds for pairing errors.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrMissingColumns    = errors.New("missing columns")
)
