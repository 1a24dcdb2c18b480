package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("development", "")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Security.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.Security.WindowDuration())
	assert.Equal(t, []string{"/health", "/", "/docs", "/redoc"}, cfg.Security.HealthPaths)
	assert.Equal(t, int64(10*1024*1024), cfg.Log.MaxSizeBytes)
	assert.Equal(t, 20, cfg.Log.AIBackups)
	assert.Equal(t, "development", cfg.Log.Environment)
	assert.True(t, cfg.Log.IsDevelopment())
	assert.Equal(t, "gemma3:1b", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.TimeoutDuration())
	assert.InDelta(t, 2000, cfg.Performance.SlowAPIThresholdMs, 0.001)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "production.yaml")
	content := []byte("server:\n  port: 9000\nsecurity:\n  rate_limit_requests: 10\nlog:\n  environment: production\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("APP_SECURITY_RATE_LIMIT_REQUESTS", "25")

	cfg, err := Load("production", path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 25, cfg.Security.RateLimitRequests)
	assert.False(t, cfg.Log.IsDevelopment())
	assert.Same(t, cfg, Get())
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load("production", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "deep_shiva", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=deep_shiva sslmode=disable", c.GetDSN())
}
