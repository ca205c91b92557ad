package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: admin\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "admin", cfg.App.Name)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, GetDuration(cfg.API.Timeout))
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("QL_TEST_BACKEND", "http://localhost:9999/api/")
	path := writeConfig(t, "api:\n  base_url: ${QL_TEST_BACKEND}\n  timeout: 2500\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api", cfg.API.BaseURL)
	assert.Equal(t, 2500*time.Millisecond, GetDuration(cfg.API.Timeout))
}

func TestLoadFromFile_EnvOverride(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("DATABASE_REDIS_ADDRESS", "127.0.0.1:6379")
	path := writeConfig(t, "session:\n  store: memory\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Session.UsesRedis())
	assert.Equal(t, "127.0.0.1:6379", cfg.Database.Redis.Address)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"redis without address", "session:\n  store: redis\n", "database.redis.address"},
		{"unknown store", "session:\n  store: disk\n", "session.store"},
		{"bad base url", "api:\n  base_url: ftp://example.com\n", "api.base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
