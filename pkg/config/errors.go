package config

import "errors"

var (
	ErrNilPointer = errors.New("config: nil target")

	// ErrParsingConfig wraps env parse failures such as a missing required
	// variable or a value that does not fit the field type.
	ErrParsingConfig = errors.New("config: cannot parse environment")

	ErrLoadingEnvFile = errors.New("config: cannot load env file")

	ErrReadingConfigFile = errors.New("config: cannot read file")
	ErrParsingConfigFile = errors.New("config: invalid yaml")
)
