package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "file", cfg.SessionBackend)
	assert.Equal(t, 5.0, cfg.RequestsPerSecond)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DRIVEHUB_API_URL", "https://api.drivehub.test/")
	t.Setenv("DRIVEHUB_TIMEOUT", "3s")
	t.Setenv("DRIVEHUB_SESSION_BACKEND", "redis")
	t.Setenv("DRIVEHUB_REDIS_ADDR", "cache:6379")

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.drivehub.test", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(home, ".drivehub.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://fleet.local:9000\nsession_path: ~/sessions/dh.json\nrequests_per_second: 0\n"), 0o600))

	cfg, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://fleet.local:9000", cfg.APIURL)
	assert.Equal(t, filepath.Join(home, "sessions", "dh.json"), cfg.SessionPath)
	assert.Equal(t, 0.0, cfg.RequestsPerSecond)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DRIVEHUB_SESSION_BACKEND", "cookie")

	_, err := loadConfig(viper.New(), "")
	assert.ErrorContains(t, err, "invalid session_backend")
}
