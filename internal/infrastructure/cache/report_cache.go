// Package cache provides the redis-backed report cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"ferropos/internal/domain/reports"
	"ferropos/pkg/logger"
)

const dailyHistoryKey = "ferropos:reports:daily"

// RedisReportCache caches the unbounded daily history between ledger
// changes. Cache failures are logged and treated as misses; storage stays
// the source of truth.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisReportCache connects to redis at addr.
func NewRedisReportCache(addr string, ttl time.Duration) *RedisReportCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisReportCache{client: client, ttl: ttl}
}

// Ping verifies connectivity.
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// GetDailyHistory returns the cached history, if any.
func (c *RedisReportCache) GetDailyHistory(ctx context.Context) (*reports.DailyHistory, bool) {
	val, err := c.client.Get(ctx, dailyHistoryKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn(ctx, "report cache read failed", "error", err)
		return nil, false
	}

	var h reports.DailyHistory
	if err := json.Unmarshal([]byte(val), &h); err != nil {
		logger.Warn(ctx, "report cache decode failed", "error", err)
		return nil, false
	}
	return &h, true
}

// SetDailyHistory stores the history with the configured TTL.
func (c *RedisReportCache) SetDailyHistory(ctx context.Context, h *reports.DailyHistory) error {
	if h == nil {
		return nil
	}
	payload, err := json.Marshal(h)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, dailyHistoryKey, payload, c.ttl).Err()
}

// InvalidateDay drops the cached history. The cache holds a single full
// history entry, so any day change invalidates the whole thing.
func (c *RedisReportCache) InvalidateDay(ctx context.Context, _ string) error {
	return c.client.Del(ctx, dailyHistoryKey).Err()
}

// InvalidateAll drops the cached history.
func (c *RedisReportCache) InvalidateAll(ctx context.Context) error {
	return c.client.Del(ctx, dailyHistoryKey).Err()
}

// NoopReportCache disables caching. Used when no redis address is configured.
type NoopReportCache struct{}

func (NoopReportCache) GetDailyHistory(context.Context) (*reports.DailyHistory, bool) {
	return nil, false
}
func (NoopReportCache) SetDailyHistory(context.Context, *reports.DailyHistory) error { return nil }
func (NoopReportCache) InvalidateDay(context.Context, string) error                  { return nil }
func (NoopReportCache) InvalidateAll(context.Context) error                          { return nil }
