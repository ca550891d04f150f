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

const percentMax = 100

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SEASONSTATS_CONFIG is set
//  3. env (prefix SEASONSTATS_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SEASONSTATS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SEASONSTATS_ADDR, SEASONSTATS_SNAPSHOT_TTL, ...
	// Keys map to the koanf tags on the struct with underscores preserved.
	envProvider := env.Provider("SEASONSTATS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "seasonstats_")
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

// validate rejects configurations the domain layer treats as
// precondition violations, so out-of-range percentages never reach the
// threshold calculator.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.CacheBackend != CacheMemory && c.CacheBackend != CacheRedis {
		return fmt.Errorf("%w: unknown cache_backend %q", ErrInvalidConfig, c.CacheBackend)
	}
	for name, pct := range map[string]float64{
		"batting_qualify_pct":  c.BattingQualifyPct,
		"pitching_qualify_pct": c.PitchingQualifyPct,
		"fielding_qualify_pct": c.FieldingQualifyPct,
		"adjustment_factor":    c.AdjustmentFactor,
	} {
		if pct < 0 || pct > percentMax {
			return fmt.Errorf("%w: %s=%v outside [0,100]", ErrInvalidConfig, name, pct)
		}
	}
	for playerID, score := range c.Strictness {
		if score < -1 || score > 1 {
			return fmt.Errorf("%w: strictness[%s]=%v outside [-1,1]", ErrInvalidConfig, playerID, score)
		}
	}
	if c.MaxLeaderboardLimit < 1 {
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	}
	return nil
}
