// Package cache provides TTL caching for upstream-derived data. Two
// backends implement the same contract: an in-memory store (default)
// and a redis store for multi-instance deployments. Organization lists
// change rarely and cache for an hour; stat snapshots cache for ten
// minutes. A token change clears everything.
package cache

import (
	"context"
	"time"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
)

// Entry kinds, used as cache-metric labels and key segments.
const (
	KindOrganizations = "organizations"
	KindSnapshot      = "snapshot"
)

// Default entry lifetimes, matching the upstream data kinds.
const (
	DefaultOrganizationsTTL = time.Hour
	DefaultSnapshotTTL      = 10 * time.Minute
)

// Cache stores fetched organization lists and raw snapshots until they
// expire. Snapshots are cached in raw counting-stat form; rates are
// re-derived on every read, so the entries survive JSON serialization
// and a factor change never serves stale adjusted values. A miss is not
// an error; backends degrade to misses when unavailable.
type Cache interface {
	// Organizations returns the cached organization list, if fresh.
	Organizations(ctx context.Context) ([]model.Organization, bool)

	// SetOrganizations replaces the cached organization list.
	SetOrganizations(ctx context.Context, orgs []model.Organization)

	// Snapshot returns the cached raw snapshot for an organization.
	Snapshot(ctx context.Context, orgID string) (model.RawSnapshot, bool)

	// SetSnapshot replaces the cached raw snapshot for an organization.
	SetSnapshot(ctx context.Context, orgID string, raw model.RawSnapshot)

	// Clear drops every entry, e.g. after a token swap.
	Clear(ctx context.Context)

	// Close releases backend resources.
	Close() error
}
