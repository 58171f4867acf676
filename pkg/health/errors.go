package health

import "errors"

var (
	// ErrCheckFailed is what Healthy reports when any check fails.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout replaces a check's error when it ran out of deadline.
	ErrCheckTimeout = errors.New("health: check timeout")
)
