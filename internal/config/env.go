// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv reads the peer configuration from the process environment using
// the `env` and `envPrefix` tags of [StructuredConfig] (APP_INBOX_SIZE,
// STORAGE_DSN, ADAPTER_NATS_URL, ...). Unset variables leave zero values so
// that later sources and defaults can fill them.
func parseEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParsingEnv, err)
	}

	return &cfg, nil
}
