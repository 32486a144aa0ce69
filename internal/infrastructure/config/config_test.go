package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "esim-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Provider.TimeoutSeconds)
	assert.Equal(t, 24*time.Hour, cfg.Sync.Interval)
	assert.Equal(t, 8*time.Hour, cfg.Sync.TokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Sync.TokenRefreshAhead)
	assert.Equal(t, "memory", cfg.UsageCache.Backend)
	assert.Equal(t, 10000, cfg.UsageCache.Capacity)
	assert.Equal(t, 15*time.Minute, cfg.UsageCache.TTL)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, base().validate())
	})

	t.Run("idle conns exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 50
		cfg.Database.MaxOpenConns = 10
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("refresh ahead must precede ttl", func(t *testing.T) {
		cfg := base()
		cfg.Sync.TokenTTL = 10 * time.Minute
		cfg.Sync.TokenRefreshAhead = 30 * time.Minute
		require.Error(t, cfg.validate())
	})

	t.Run("unknown usage cache backend rejected", func(t *testing.T) {
		cfg := base()
		cfg.UsageCache.Backend = "memcached"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "usage_cache.backend")
	})

	t.Run("production requires provider credentials", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider.account")

		cfg.Provider.Account = "acct"
		cfg.Provider.Secret = "key"
		require.NoError(t, cfg.validate())
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Provider.Account = "acct"
		cfg.Provider.Secret = "key"
		require.Error(t, cfg.validate())
	})
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "esim",
		Password: "p@ss/word",
		DBName:   "esim",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
