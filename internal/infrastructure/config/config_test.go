package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "retail-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 1, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 5, cfg.Inventory.BestSellerLimit)
	assert.Equal(t, 30, cfg.Inventory.TrendWindowDays)
	assert.Equal(t, 30*time.Second, cfg.Inventory.DashboardCacheTTL)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins, "no wildcard CORS by default")
	assert.NotEmpty(t, cfg.HTTP.CORSAllowMethods)

	// Defaults don't clobber configured values
	cfg = &Config{Inventory: InventoryConfig{LowStockThreshold: 3}}
	applyDefaults(cfg)
	assert.Equal(t, 3, cfg.Inventory.LowStockThreshold)
}

func TestValidate(t *testing.T) {
	t.Run("defaults pass", func(t *testing.T) {
		assert.NoError(t, defaultConfig().validate())
	})

	t.Run("pool size bounds", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		assert.Error(t, cfg.validate())

		cfg = defaultConfig()
		cfg.Database.MaxOpenConns = 0
		assert.Error(t, cfg.validate())
	})

	t.Run("inventory bounds", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Inventory.LowStockThreshold = -1
		assert.Error(t, cfg.validate())

		cfg = defaultConfig()
		cfg.Inventory.BestSellerLimit = 0
		assert.Error(t, cfg.validate())

		cfg = defaultConfig()
		cfg.Inventory.TrendWindowDays = 0
		assert.Error(t, cfg.validate())
	})

	t.Run("production hardening", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.App.Env = "production"
		require.Error(t, cfg.validate(), "missing password")

		cfg.Database.Password = "secret"
		require.Error(t, cfg.validate(), "sslmode disable")

		cfg.Database.SSLMode = "require"
		assert.NoError(t, cfg.validate())

		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate(), "wildcard CORS")
	})
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "retail",
		Password: "p@ss/word",
		DBName:   "retail",
		SSLMode:  "require",
	}

	dsn := db.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5433")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password are escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
