package config

import (
	"fmt"
	"time"
)

// Defaults applied to a merged config before validation.
const (
	// MaxInboxSize is the largest inbox the peer will ever advertise.
	MaxInboxSize = 4096

	DefaultHTTPAddress          = "localhost:8080"
	DefaultServerRequestTimeout = 30 * time.Second
	DefaultAdapterTimeout       = 5 * time.Second
	DefaultMaxValueSize         = 256
	DefaultReconnectDelay       = time.Second
	DefaultQueueSize            = 64
	DefaultNATSSubject          = "bucketsync"
)

// PeerConfig is the runtime configuration of the bucket-sync peer,
// assembled from [StructuredConfig] with defaults applied.
type PeerConfig struct {
	App     App
	Storage Storage
	Server  Server
	Adapter Adapter
	Workers Workers
	UI      UI
}

// GetPeerConfig builds and validates the peer config from the environment,
// args and the optional JSON file.
func GetPeerConfig(args []string) (*PeerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	peerCfg := NewPeerConfig(cfg)
	return peerCfg, peerCfg.validate()
}

// NewPeerConfig maps cfg onto a PeerConfig and fills unset fields with
// defaults. The inbox size is capped at MaxInboxSize.
func NewPeerConfig(cfg *StructuredConfig) *PeerConfig {
	p := &PeerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
		Adapter: cfg.Adapter,
		Workers: cfg.Workers,
		UI:      cfg.UI,
	}

	if p.App.InboxSize == 0 || p.App.InboxSize > MaxInboxSize {
		p.App.InboxSize = MaxInboxSize
	}
	if p.Storage.MaxValueSize == 0 {
		p.Storage.MaxValueSize = DefaultMaxValueSize
	}
	if p.Server.HTTPAddress == "" {
		p.Server.HTTPAddress = DefaultHTTPAddress
	}
	if p.Server.RequestTimeout == 0 {
		p.Server.RequestTimeout = DefaultServerRequestTimeout
	}
	if p.Adapter.RequestTimeout == 0 {
		p.Adapter.RequestTimeout = DefaultAdapterTimeout
	}
	if p.Adapter.NATSURL != "" && p.Adapter.NATSSubject == "" {
		p.Adapter.NATSSubject = DefaultNATSSubject
	}
	if p.Workers.ReconnectDelay == 0 {
		p.Workers.ReconnectDelay = DefaultReconnectDelay
	}
	if p.Workers.QueueSize == 0 {
		p.Workers.QueueSize = DefaultQueueSize
	}

	return p
}
