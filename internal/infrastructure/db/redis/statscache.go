package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bugtracker-pro/bugtracker/internal/api/metrics"
	"github.com/bugtracker-pro/bugtracker/internal/core/ports"
)

const (
	statsKey = "dashboard:stats"
	statsTTL = 30 * time.Second
)

// StatsCache caches the dashboard bug statistics in Redis. It is strictly
// best-effort: any Redis failure is logged and treated as a miss, and the
// short TTL bounds staleness if an invalidation is lost.
type StatsCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, logger zerolog.Logger) *StatsCache {
	return &StatsCache{client: client, logger: logger}
}

func (c *StatsCache) Get(ctx context.Context) (*ports.BugStats, bool) {
	payload, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Msg("stats cache read failed")
		}
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var stats ports.BugStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		c.logger.Warn().Err(err).Msg("stats cache payload corrupt")
		metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return &stats, true
}

func (c *StatsCache) Set(ctx context.Context, stats *ports.BugStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, payload, statsTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("stats cache write failed")
	}
}

func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
