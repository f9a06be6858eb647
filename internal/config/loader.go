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
//  2. file (YAML) if GAVEL_CONFIG is set
//  3. env (prefix GAVEL_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("GAVEL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GAVEL_ADDR, GAVEL_NOISE_FLOOR, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("GAVEL_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "gavel_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SelectionFraction <= 0 || c.SelectionFraction > 1:
		return fmt.Errorf("%w: selection_fraction must be in (0,1]", ErrInvalidConfig)
	case c.ScarcityCap < 0 || c.ScarcityCap > 1:
		return fmt.Errorf("%w: scarcity_cap must be in [0,1]", ErrInvalidConfig)
	case c.DupeSimilarity < 0 || c.DupeSimilarity > 1:
		return fmt.Errorf("%w: dupe_similarity must be in [0,1]", ErrInvalidConfig)
	case c.CoolingOffHours < 0:
		return fmt.Errorf("%w: cooling_off_hours must not be negative", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	return nil
}
