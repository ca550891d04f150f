package qualify

import "errors"

// Sentinel kinds for threshold errors.
var (
	ErrPercentOutOfRange = errors.New("qualification percent outside [0,100]")
)
