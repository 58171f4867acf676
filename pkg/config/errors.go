package config

import "errors"

var (
	// ErrFailedToReadConfig is returned when the config file cannot be read.
	ErrFailedToReadConfig = errors.New("config: failed to read file")

	// ErrFailedToParseConfig is returned when the file is not valid YAML for
	// the target type.
	ErrFailedToParseConfig = errors.New("config: failed to parse file")

	// ErrInvalidConfig is returned when the parsed config fails its own
	// Validate method.
	ErrInvalidConfig = errors.New("config: validation failed")
)
