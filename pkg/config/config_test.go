package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.DemoData)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("STORAGE_BACKEND", "sqlite")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("STORAGE_BACKEND")
	}()

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_PostgresBackend(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("STORAGE_BACKEND", "postgres")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PASSWORD", "hunter2")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PASSWORD")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Backend)
	assert.Equal(t,
		"host=db.internal port=5432 user=postgres password=hunter2 dbname=clinic sslmode=disable",
		cfg.Database.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", c.RedisAddr())
}
