package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointConfigAway keeps a developer's real ~/.gong-mcp/config.yaml out of
// the test run.
func pointConfigAway(t *testing.T) {
	t.Helper()
	t.Setenv("GONG_MCP_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	pointConfigAway(t)

	cfg := Load()

	assert.Equal(t, "https://api.gong.io", cfg.Gong.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, time.Hour, cfg.Directory.TTL)
	assert.Equal(t, 30*time.Second, cfg.Resilience.Timeout)
	assert.Equal(t, 3, cfg.Resilience.MaxRetries)
	assert.Equal(t, "gong-mcp", cfg.MCP.ServerName)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	pointConfigAway(t)
	t.Setenv("GONG_BASE_URL", "https://eu.gong.example")
	t.Setenv("GONG_ACCESS_KEY", "key")
	t.Setenv("GONG_ACCESS_SECRET", "secret")
	t.Setenv("GONG_MCP_CACHE_ENABLED", "false")
	t.Setenv("GONG_MCP_CACHE_TTL", "5m")
	t.Setenv("GONG_MCP_DIRECTORY_TTL", "30m")
	t.Setenv("GONG_MCP_TIMEOUT", "10s")
	t.Setenv("GONG_MCP_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "https://eu.gong.example", cfg.Gong.BaseURL)
	assert.Equal(t, "key", cfg.Gong.AccessKey)
	assert.Equal(t, "secret", cfg.Gong.AccessSecret)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Minute, cfg.Directory.TTL)
	assert.Equal(t, 10*time.Second, cfg.Resilience.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
gong:
  base_url: https://file.gong.example
  access_key: file-key
mcp:
  server_name: custom-name
log:
  level: warn
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("GONG_MCP_CONFIG", path)

	cfg := Load()

	assert.Equal(t, "https://file.gong.example", cfg.Gong.BaseURL)
	assert.Equal(t, "file-key", cfg.Gong.AccessKey)
	assert.Equal(t, "custom-name", cfg.MCP.ServerName)
	assert.Equal(t, "warn", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gong:\n  base_url: https://file.example\n"), 0o600))
	t.Setenv("GONG_MCP_CONFIG", path)
	t.Setenv("GONG_BASE_URL", "https://env.example")

	cfg := Load()
	assert.Equal(t, "https://env.example", cfg.Gong.BaseURL)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	pointConfigAway(t)
	t.Setenv("GONG_MCP_CACHE_TTL", "not-a-duration")
	t.Setenv("GONG_MCP_CACHE_ENABLED", "not-a-bool")

	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
}
