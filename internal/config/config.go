// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// bucket-sync peer. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version and the
	// advertised inbox size.
	App App `envPrefix:"APP_"`

	// Storage selects and sizes the persistent key/value store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the address and timeout of the device HTTP API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the outbound companion transports.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds event loop and link timer settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// UI holds the terminal monitor settings.
	UI UI `envPrefix:"UI_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// InboxSize is the largest packet the peer accepts. It is advertised to
	// the companion in the hello message and capped at MaxInboxSize.
	// Env: APP_INBOX_SIZE
	InboxSize int `env:"INBOX_SIZE"`
}

// Storage holds the persistent store settings.
type Storage struct {
	// DSN selects the backend: a SQLite file path, ":memory:", or a
	// redis:// URL.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// MaxValueSize is the per-key capacity in bytes.
	// Env: STORAGE_MAX_VALUE_SIZE
	MaxValueSize int `env:"MAX_VALUE_SIZE"`

	// Quota is the total number of bytes the store may hold; 0 disables it.
	// Env: STORAGE_QUOTA
	Quota int `env:"QUOTA"`
}

// Server holds network and timeout settings for the inbound HTTP API.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound transports used to reach the companion.
type Adapter struct {
	// CompanionURL is the base URL of the companion HTTP endpoint.
	// Env: ADAPTER_COMPANION_URL
	CompanionURL string `env:"COMPANION_URL"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// NATSURL enables the NATS transport when set.
	// Env: ADAPTER_NATS_URL
	NATSURL string `env:"NATS_URL"`

	// NATSSubject is the subject prefix used on the bus.
	// Env: ADAPTER_NATS_SUBJECT
	NATSSubject string `env:"NATS_SUBJECT"`
}

// Workers holds event loop and link timer settings.
type Workers struct {
	// ReconnectDelay is how long the link waits before asking the companion
	// to reconnect after a send failure.
	// Env: WORKERS_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`

	// QueueSize is the capacity of the event loop queue.
	// Env: WORKERS_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// UI holds terminal monitor settings.
type UI struct {
	// Enabled starts the bubbletea monitor on the terminal.
	// Env: UI_ENABLED
	Enabled bool `env:"ENABLED"`

	// LogFile receives log output while the monitor owns the terminal.
	// Env: UI_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// AwaitInitialSync makes the peer report "syncing" from startup until
	// the first session finishes.
	// Env: UI_AWAIT_INITIAL_SYNC
	AwaitInitialSync bool `env:"AWAIT_INITIAL_SYNC"`
}

// GetStructuredConfig merges the configuration sources, each overriding
// the non-zero fields of the one before it:
//  1. JSON file (path taken from flags, then from the environment)
//  2. Environment variables
//  3. Command-line flags from args
//
// Any source error fails the whole build, as does final validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
