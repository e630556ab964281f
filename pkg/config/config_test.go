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

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, c.Server.AllowOrigins)
	assert.True(t, c.Server.CORS)
	assert.Equal(t, "chartjs", c.Charts.Backend)
	assert.Equal(t, 1.0, c.Charts.RiskValue)
	assert.Equal(t, time.Hour, c.Cache.TTL)
	assert.False(t, c.Cache.Redis.Enabled)
	assert.Equal(t, 20.0, c.Risk.RateLimit.Capacity)
	assert.Equal(t, "/metrics", c.Metrics.Path)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
  cors: false
charts:
  backend: raster
  seed: 42
  width: 1024
cache:
  redis:
    enabled: true
    addr: redis:6379
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.False(t, c.Server.CORS)
	assert.Equal(t, "raster", c.Charts.Backend)
	assert.EqualValues(t, 42, c.Charts.Seed)
	assert.Equal(t, 1024, c.Charts.Width)
	assert.Equal(t, 400, c.Charts.Height)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "redis:6379", c.Cache.Redis.Addr)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":   "charts:\n  backend: svg\n",
		"risk":      "charts:\n  risk_value: 20\n",
		"port":      "server:\n  port: 70000\n",
		"log level": "log:\n  level: loud\n",
		"publish":   "log:\n  collector:\n    publish: true\n",
		"yaml":      "server: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":          "9999",
		"LOG_LEVEL":     "DEBUG",
		"CHART_BACKEND": "Raster",
		"CHART_SEED":    "7",
		"REDIS_ADDR":    "cache:6379",
	}
	c := Default()
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, 9999, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "raster", c.Charts.Backend)
	assert.EqualValues(t, 7, c.Charts.Seed)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache:6379", c.Cache.Redis.Addr)
	require.NoError(t, c.Validate())

	env = map[string]string{"CHART_SEED": "abc"}
	assert.Error(t, Default().applyEnv(func(k string) string { return env[k] }))
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7070, c.Server.Port)
}
