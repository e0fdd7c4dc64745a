package frame

import "errors"

// Sentinel kinds for frame errors.
var (
	ErrEmptyFrame    = errors.New("empty frame")
	ErrMixedColumn   = errors.New("mixed column types")
	ErrRaggedColumns = errors.New("ragged columns")
	ErrValidation    = errors.New("submission failed validation")
)
