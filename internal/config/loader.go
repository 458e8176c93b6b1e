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

	"github.com/okian/stepforge/internal/domain/profile"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if STEPFORGE_CONFIG is set
//  3. env (prefix STEPFORGE_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STEPFORGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: STEPFORGE_SEED, STEPFORGE_OUTPUT_DIR, ...
	// Map env keys like STEPFORGE_OUTPUT_DIR -> output_dir (flat keys).
	envProvider := env.Provider("STEPFORGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "stepforge_")
		return s
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
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("%w: at least one format is required", ErrInvalidConfig)
	}
	for _, f := range c.Formats {
		if f != "sm" && f != "ssc" {
			return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, f)
		}
	}
	for _, t := range c.Tiers {
		if !profile.Known(profile.Tier(t)) {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidConfig, t)
		}
	}
	return nil
}
