package ladder

import "errors"

// Sentinel kinds for ladder errors.
var (
	ErrInvalidParameters = errors.New("invalid parameters")
)
