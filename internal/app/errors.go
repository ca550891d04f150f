package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrUnknownCategory      = errors.New("unknown stat category")
	ErrFactorOutOfRange     = errors.New("adjustment factor out of range")
	ErrStrictnessOutOfRange = errors.New("strictness score out of range")
	ErrClientUnavailable    = errors.New("upstream client not configured")
)
