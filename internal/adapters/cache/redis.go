package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamechanger-stats/seasonstats/internal/domain/model"
	"github.com/gamechanger-stats/seasonstats/pkg/logger"
	"github.com/gamechanger-stats/seasonstats/pkg/metrics"
)

const keyPrefix = "seasonstats:"

// RedisCache implements Cache on redis with JSON-marshalled values.
// Backend failures degrade to cache misses; the service keeps working
// against the upstream directly.
type RedisCache struct {
	client *redis.Client
	log    logger.Logger

	organizationsTTL time.Duration
	snapshotTTL      time.Duration
}

// NewRedisCache creates a redis-backed cache with configuration options.
func NewRedisCache(client *redis.Client, opts ...Option) *RedisCache {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	log := s.log
	if log == nil {
		log = logger.Named("cache")
	}

	return &RedisCache{
		client:           client,
		log:              log,
		organizationsTTL: s.organizationsTTL,
		snapshotTTL:      s.snapshotTTL,
	}
}

func (c *RedisCache) get(ctx context.Context, key, kind string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(ctx, "redis get failed", logger.String("key", key), logger.Error(err))
		}
		metrics.RecordCacheMiss(kind)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn(ctx, "corrupt cache entry", logger.String("key", key), logger.Error(err))
		metrics.RecordCacheMiss(kind)
		return false
	}
	metrics.RecordCacheHit(kind)
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn(ctx, "marshal cache entry failed", logger.String("key", key), logger.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.log.Warn(ctx, "redis set failed", logger.String("key", key), logger.Error(err))
	}
}

// Organizations returns the cached organization list, if fresh.
func (c *RedisCache) Organizations(ctx context.Context) ([]model.Organization, bool) {
	var orgs []model.Organization
	if !c.get(ctx, keyPrefix+KindOrganizations, KindOrganizations, &orgs) {
		return nil, false
	}
	return orgs, true
}

// SetOrganizations replaces the cached organization list.
func (c *RedisCache) SetOrganizations(ctx context.Context, orgs []model.Organization) {
	c.set(ctx, keyPrefix+KindOrganizations, orgs, c.organizationsTTL)
}

// Snapshot returns the cached raw snapshot for an organization. Only
// raw counting stats are cached; derived rate fields are excluded from
// the wire records' JSON, so a derived snapshot would not survive the
// marshal round trip.
func (c *RedisCache) Snapshot(ctx context.Context, orgID string) (model.RawSnapshot, bool) {
	var raw model.RawSnapshot
	if !c.get(ctx, keyPrefix+KindSnapshot+":"+orgID, KindSnapshot, &raw) {
		return model.RawSnapshot{}, false
	}
	return raw, true
}

// SetSnapshot replaces the cached raw snapshot for an organization.
func (c *RedisCache) SetSnapshot(ctx context.Context, orgID string, raw model.RawSnapshot) {
	c.set(ctx, keyPrefix+KindSnapshot+":"+orgID, raw, c.snapshotTTL)
}

// Clear drops every entry under the service prefix.
func (c *RedisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn(ctx, "redis del failed", logger.String("key", iter.Val()), logger.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn(ctx, "redis scan failed", logger.Error(err))
	}
}

// Close releases the redis connection.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
