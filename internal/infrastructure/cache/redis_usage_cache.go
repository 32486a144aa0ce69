package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/esimhub/backend/internal/domain/provider"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// usageKeyPrefix namespaces cached usage reports in Redis
const usageKeyPrefix = "esim:usage:"

// redisOpTimeout bounds each cache round trip so a slow Redis never stalls a
// usage lookup longer than a direct provider call would.
const redisOpTimeout = 2 * time.Second

// RedisUsageCache is a Redis-backed usage cache for multi-instance
// deployments: every instance sees the same cached reports, and expiry is
// enforced by key TTL. Redis failures degrade to cache misses.
type RedisUsageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisUsageCache creates a new RedisUsageCache
func NewRedisUsageCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisUsageCache {
	return &RedisUsageCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached report for an ICCID, or false on a miss.
func (c *RedisUsageCache) Get(iccid string) (*provider.UsageReport, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, usageKeyPrefix+iccid).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("usage cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var report provider.UsageReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("usage cache entry corrupt", zap.String("iccid", iccid), zap.Error(err))
		return nil, false
	}
	return &report, true
}

// Set stores a report under the ICCID with the cache TTL.
func (c *RedisUsageCache) Set(iccid string, report *provider.UsageReport) {
	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("usage cache encode failed", zap.String("iccid", iccid), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := c.client.Set(ctx, usageKeyPrefix+iccid, data, c.ttl).Err(); err != nil {
		c.logger.Warn("usage cache write failed", zap.String("iccid", iccid), zap.Error(err))
	}
}
