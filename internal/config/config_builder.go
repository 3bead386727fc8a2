package config

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"dario.cat/mergo"
)

// configSource names where a layer of configuration came from. Sources are
// merged in ascending rank, so a higher rank overrides a lower one.
type configSource int

const (
	sourceJSON configSource = iota
	sourceEnv
	sourceFlags
)

func (s configSource) String() string {
	switch s {
	case sourceJSON:
		return "json"
	case sourceEnv:
		return "env"
	case sourceFlags:
		return "flags"
	}
	return "unknown"
}

type configLayer struct {
	source configSource
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []configLayer
	errs   []error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

func (b *configBuilder) add(source configSource, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.layers = append(b.layers, configLayer{source: source, cfg: cfg})
	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("error building config: %w", errors.Join(b.errs...))
	}

	layers := slices.Clone(b.layers)
	slices.SortStableFunc(layers, func(x, y configLayer) int { return cmp.Compare(x.source, y.source) })

	config := new(StructuredConfig)
	for _, l := range layers {
		if err := mergo.Merge(config, l.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", l.source, err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg, err := parseEnv()
	return b.add(sourceEnv, cfg, err)
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	cfg, err := ParseFlags(args)
	return b.add(sourceFlags, cfg, err)
}

// withJSON loads the file named by the highest ranked layer that sets a
// path, if any.
func (b *configBuilder) withJSON() *configBuilder {
	path, rank := "", configSource(-1)
	for _, l := range b.layers {
		if l.cfg.JSONFilePath != "" && l.source > rank {
			path, rank = l.cfg.JSONFilePath, l.source
		}
	}
	if path == "" {
		return b
	}

	cfg, err := parseJSON(path)
	return b.add(sourceJSON, cfg, err)
}
