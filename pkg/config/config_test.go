package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "DATABASE")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_TOKEN", "token-123")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StorageDatabase, cfg.StorageBackend)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "token-123", cfg.AdminToken)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, StorageJSON, cfg.StorageBackend)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "rankings",
		DBPort:     "5432",
		DBSSLMode:  "disable",
	}

	assert.Equal(t, "host=localhost user=u password=p dbname=rankings port=5432 sslmode=disable", cfg.PostgresDSN())
}
