package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if INTERNMATCH_CONFIG is set
//  3. env (prefix INTERNMATCH_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("INTERNMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: INTERNMATCH_ADDR, INTERNMATCH_TOP_K_DEFAULT, ...
	// Map env keys like INTERNMATCH_TOP_K_DEFAULT -> top_k_default (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("INTERNMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "internmatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the orchestrator cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TopKDefault < 1:
		return fmt.Errorf("%w: top_k_default must be >= 1", ErrInvalidConfig)
	case c.MaxTopK < c.TopKDefault:
		return fmt.Errorf("%w: max_top_k must be >= top_k_default", ErrInvalidConfig)
	case c.DomainBoost <= 0 || c.DomainPenalty <= 0:
		return fmt.Errorf("%w: domain_boost and domain_penalty must be positive", ErrInvalidConfig)
	case c.Regularization < 0 || c.Regularization >= 1:
		return fmt.Errorf("%w: regularization must be in [0, 1)", ErrInvalidConfig)
	case c.FallbackPolicy != FallbackPermissive && c.FallbackPolicy != FallbackStrict:
		return fmt.Errorf("%w: fallback_policy must be %q or %q", ErrInvalidConfig, FallbackPermissive, FallbackStrict)
	case c.FallbackSliceSize < 1:
		return fmt.Errorf("%w: fallback_slice_size must be >= 1", ErrInvalidConfig)
	}
	return nil
}
