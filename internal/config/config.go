// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep defaults in New and layer file/env on top in Load.
// - External errors must be wrapped via this package's error helpers.
package config

import "time"

// Cache backend names.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// CORSOrigins lists allowed browser origins for the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// UpstreamBaseURL points at the stats provider API.
	UpstreamBaseURL string `koanf:"upstream_base_url"`

	// UpstreamToken is the initial bearer token; it can be replaced at
	// runtime via POST /api/token.
	UpstreamToken string `koanf:"upstream_token"`

	// FetchConcurrency bounds concurrent per-team stat fetches.
	FetchConcurrency int `koanf:"fetch_concurrency"`

	// CacheBackend selects the snapshot cache: memory or redis.
	CacheBackend string `koanf:"cache_backend"`

	// RedisAddr is used when CacheBackend is redis.
	RedisAddr string `koanf:"redis_addr"`

	// OrganizationsTTL and SnapshotTTL bound cache entry lifetimes.
	OrganizationsTTL time.Duration `koanf:"organizations_ttl"`
	SnapshotTTL      time.Duration `koanf:"snapshot_ttl"`

	// Qualification percentages, each within [0,100], as a share of
	// the league average for the category's denominator stat.
	BattingQualifyPct  float64 `koanf:"batting_qualify_pct"`
	PitchingQualifyPct float64 `koanf:"pitching_qualify_pct"`
	FieldingQualifyPct float64 `koanf:"fielding_qualify_pct"`

	// AdjustmentFactor is the global scorer-bias factor in [0,100].
	AdjustmentFactor float64 `koanf:"adjustment_factor"`

	// Strictness maps player ids to scorer strictness scores in [-1,1].
	// Practical to supply via the YAML file; it can also be replaced at
	// runtime via POST /api/adjustment.
	Strictness map[string]float64 `koanf:"strictness"`

	// MaxLeaderboardLimit caps ?limit on leaderboard requests.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8000",
		CORSOrigins:         []string{"http://localhost:3000"},
		UpstreamBaseURL:     "https://api.team-manager.gc.com",
		FetchConcurrency:    4,
		CacheBackend:        CacheMemory,
		RedisAddr:           "localhost:6379",
		OrganizationsTTL:    time.Hour,
		SnapshotTTL:         10 * time.Minute,
		BattingQualifyPct:   20,
		PitchingQualifyPct:  20,
		FieldingQualifyPct:  20,
		AdjustmentFactor:    50,
		MaxLeaderboardLimit: 100,
	}
}
