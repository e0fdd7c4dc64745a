package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SCORING_CONFIG is set
//  3. env (prefix SCORING_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SCORING_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: SCORING_BOOTSTRAP_N, SCORING_WORKER_COUNT, ...
	// Map env keys like SCORING_BOOTSTRAP_N -> bootstrap_n (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCORING_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "scoring_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.BootstrapN < 1 || cfg.ReportBootstrapN < 1 {
		return nil, errors.New("bootstrap draw counts must be at least 1")
	}
	if cfg.BayesThreshold <= 0 {
		return nil, errors.New("bayes_threshold must be positive")
	}
	return &cfg, nil
}
