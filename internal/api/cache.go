package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dashboard-core/internal/common/logger"
)

// SnapshotCache keeps the latest fetch-all payload per entity type in
// Redis so a dashboard reload within the TTL can skip the remote API.
// The cache is strictly best-effort: an unavailable Redis degrades to
// plain fetches.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration, log logger.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "snapshot-cache"}),
	}
}

func (c *SnapshotCache) key(entity string) string {
	return "snapshot:" + entity
}

// Get returns the cached payload for the entity type, or nil on miss
// or cache error.
func (c *SnapshotCache) Get(ctx context.Context, entity string) []byte {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, c.key(entity)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("cache read failed", map[string]interface{}{
				"entity": entity,
				"error":  err.Error(),
			})
		}
		return nil
	}
	return data
}

// Set stores the payload with the configured TTL. Failures are logged
// and swallowed.
func (c *SnapshotCache) Set(ctx context.Context, entity string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, c.key(entity), payload, c.ttl).Err(); err != nil {
		c.logger.Debug("cache write failed", map[string]interface{}{
			"entity": entity,
			"error":  err.Error(),
		})
	}
}

// Invalidate drops the cached payload, called after mutations so the
// next fetch observes the server state.
func (c *SnapshotCache) Invalidate(ctx context.Context, entity string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(entity)).Err(); err != nil {
		c.logger.Debug("cache invalidate failed", map[string]interface{}{
			"entity": entity,
			"error":  err.Error(),
		})
	}
}
