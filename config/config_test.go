package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SECURE_COOKIES", "")

	cfg := Load()

	assert.Equal(t, "8099", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.Server.SecureCookies)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 10*time.Second, cfg.Cache.StatusTTL)
	assert.Equal(t, "gymref", cfg.JWT.Issuer)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "file:gymref.db")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.Server.SecureCookies)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:gymref.db", cfg.Database.DSN)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("JWT_REFRESH_EXPIRY", "forever")

	cfg := Load()

	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiry)
}
