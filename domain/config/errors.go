package config

import "errors"

// Errors returned while loading configuration and world files.
var (
	// ErrFileNotFound is returned when a configuration or world file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidFormat is returned for malformed YAML or JSON, and for keys
	// the target type does not define.
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrUnsupportedFormat is returned for extensions other than .yaml, .yml and .json.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingEnvVar is returned in strict mode for references to unset variables.
	ErrMissingEnvVar = errors.New("required environment variable not set")
)
