package binder

import "errors"

var (
	// ErrUnsupportedTarget is returned when the bind destination is not a
	// non-nil pointer to a struct.
	ErrUnsupportedTarget = errors.New("binder: target must be a non-nil struct pointer")

	// ErrDecode is returned when the request payload cannot be parsed into
	// the target. Malformed JSON, bad form encoding, and type conversion
	// failures all surface through this sentinel.
	ErrDecode = errors.New("binder: failed to decode request")
)
