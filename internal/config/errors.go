package config

import "errors"

// ErrParsingEnv wraps failures to convert an environment variable to its
// field type.
var ErrParsingEnv = errors.New("error getting env configs")

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid outbound transport settings
	// (for example, neither a companion URL nor a NATS URL).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, a negative quota).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a non-positive inbox size).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid event loop settings
	// (for example, a zero reconnect delay).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidServerConfigs indicates invalid HTTP API settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
