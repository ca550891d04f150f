package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/pkg/metrics"
)

// entry is one cached value with its expiry instant.
type entry struct {
	value   any
	expires time.Time
}

// MemoryCache implements Cache with an in-memory map and lazy expiry:
// stale entries are evicted on read rather than by a background sweeper.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	organizationsTTL time.Duration
	snapshotTTL      time.Duration
	now              func() time.Time
}

// NewMemoryCache creates an in-memory cache with configuration options.
func NewMemoryCache(opts ...Option) *MemoryCache {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	return &MemoryCache{
		entries:          make(map[string]entry),
		organizationsTTL: s.organizationsTTL,
		snapshotTTL:      s.snapshotTTL,
		now:              s.now,
	}
}

func (c *MemoryCache) get(key, kind string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.RecordCacheMiss(kind)
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		// Re-check under the write lock; a writer may have refreshed it.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expires) {
			delete(c.entries, key)
			metrics.RecordCacheEviction()
		}
		c.mu.Unlock()
		metrics.RecordCacheMiss(kind)
		return nil, false
	}

	metrics.RecordCacheHit(kind)
	return e.value, true
}

func (c *MemoryCache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Organizations returns the cached organization list, if fresh.
func (c *MemoryCache) Organizations(_ context.Context) ([]model.Organization, bool) {
	v, ok := c.get(KindOrganizations, KindOrganizations)
	if !ok {
		return nil, false
	}
	orgs, ok := v.([]model.Organization)
	return orgs, ok
}

// SetOrganizations replaces the cached organization list.
func (c *MemoryCache) SetOrganizations(_ context.Context, orgs []model.Organization) {
	c.set(KindOrganizations, orgs, c.organizationsTTL)
}

// Snapshot returns the cached raw snapshot for an organization.
func (c *MemoryCache) Snapshot(_ context.Context, orgID string) (model.RawSnapshot, bool) {
	v, ok := c.get(KindSnapshot+":"+orgID, KindSnapshot)
	if !ok {
		return model.RawSnapshot{}, false
	}
	raw, ok := v.(model.RawSnapshot)
	return raw, ok
}

// SetSnapshot replaces the cached raw snapshot for an organization.
func (c *MemoryCache) SetSnapshot(_ context.Context, orgID string, raw model.RawSnapshot) {
	c.set(KindSnapshot+":"+orgID, raw, c.snapshotTTL)
}

// Clear drops every entry.
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Close is a no-op for the memory backend.
func (c *MemoryCache) Close() error { return nil }
