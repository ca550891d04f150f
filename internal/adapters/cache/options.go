package cache

import (
	"time"

	"github.com/gamechanger-stats/seasonstats/pkg/logger"
)

// settings holds backend-independent configuration.
type settings struct {
	organizationsTTL time.Duration
	snapshotTTL      time.Duration
	now              func() time.Time
	log              logger.Logger
}

func defaultSettings() settings {
	return settings{
		organizationsTTL: DefaultOrganizationsTTL,
		snapshotTTL:      DefaultSnapshotTTL,
		now:              time.Now,
	}
}

// Option applies a configuration option to a cache backend.
type Option func(*settings)

// WithOrganizationsTTL sets the organization-list entry lifetime.
func WithOrganizationsTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.organizationsTTL = ttl
		}
	}
}

// WithSnapshotTTL sets the snapshot entry lifetime.
func WithSnapshotTTL(ttl time.Duration) Option {
	return func(s *settings) {
		if ttl > 0 {
			s.snapshotTTL = ttl
		}
	}
}

// WithNow overrides the clock, for expiry tests.
func WithNow(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the backend.
func WithLogger(log logger.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}
