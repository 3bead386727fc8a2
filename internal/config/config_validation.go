// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Only values that are invalid regardless of defaults are rejected here;
// [PeerConfig.validate] checks the completed peer view.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.MaxValueSize < 0 || cfg.Storage.Quota < 0 {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.InboxSize < 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Workers.QueueSize < 0 || cfg.Workers.ReconnectDelay < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *PeerConfig) validate() error {
	if cfg.Storage.MaxValueSize <= 0 || cfg.Storage.Quota < 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.InboxSize <= 0 || cfg.App.InboxSize > MaxInboxSize {
		return ErrInvalidAppConfigs
	}

	// the peer must be able to reach the companion somehow
	if cfg.Adapter.CompanionURL == "" && cfg.Adapter.NATSURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.ReconnectDelay <= 0 || cfg.Workers.QueueSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
