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
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if EXPERT_CONFIG is set
//  3. env (prefix EXPERT_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("EXPERT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: EXPERT_ADDR, EXPERT_WAREHOUSE_DSN, ...
	// Map env keys like EXPERT_WAREHOUSE_DSN -> warehouse_dsn (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("EXPERT_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "expert_")
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

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.SkillsTable == "" || cfg.OpportunityTable == "" || cfg.AccountTable == "" {
		return fmt.Errorf("%w: table names must not be empty", ErrInvalidConfig)
	}
	if cfg.SearchCacheTTLSeconds <= 0 || cfg.RosterCacheTTLSeconds <= 0 {
		return fmt.Errorf("%w: cache TTLs must be positive", ErrInvalidConfig)
	}
	if cfg.FallbackLimit <= 0 {
		return fmt.Errorf("%w: fallback_limit must be positive", ErrInvalidConfig)
	}
	if cfg.WindowYears <= 0 {
		return fmt.Errorf("%w: window_years must be positive", ErrInvalidConfig)
	}
	return nil
}
