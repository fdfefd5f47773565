package cache

import (
	"go.uber.org/zap"

	appinv "github.com/retail/backend/internal/application/inventory"
	"github.com/retail/backend/internal/infrastructure/config"
)

// NewStatsCache creates a stats cache based on configuration. When Redis is
// enabled but unreachable it falls back to the in-memory cache with a
// warning, since a stale or cold dashboard cache is never a correctness
// problem.
func NewStatsCache(cfg config.RedisConfig, logger *zap.Logger) appinv.StatsCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Enabled {
		cache, err := NewRedisStatsCache(cfg)
		if err == nil {
			logger.Info("using Redis stats cache", zap.String("addr", cfg.Addr()))
			return cache
		}
		logger.Warn("Redis unavailable, falling back to in-memory stats cache", zap.Error(err))
	}

	return NewInMemoryStatsCache()
}
