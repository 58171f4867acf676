package cache

import "errors"

var (
	// ErrNotFound reports a key that is absent or already expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed rejects writes arriving after Close.
	ErrClosed = errors.New("cache: closed")
)
