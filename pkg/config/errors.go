package config

import "errors"

var (
	// ErrParsingConfig wraps env parse failures, including missing required keys.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("config: nil pointer provided to loader")
	// ErrLoadingEnvFile is returned when an explicitly requested .env file cannot be read.
	ErrLoadingEnvFile = errors.New("config: failed to load env file")
)
