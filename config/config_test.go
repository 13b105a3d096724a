package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  addr: ":9000"
model:
  path: "models/test.json"
storage:
  backend: sqlite
  path: crossings.db
metrics:
  prometheus_enabled: true
weather:
  api_key: "owm-key"
traffic:
  google_api_key: "gm-key"
  lta_account_key: "lta-key"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "models/test.json", cfg.Model.Path)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "owm-key", cfg.Weather.APIKey)
	assert.Equal(t, "gm-key", cfg.Traffic.GoogleAPIKey)
	assert.Equal(t, "lta-key", cfg.Traffic.LTAAccountKey)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, "jsonl", cfg.Storage.Backend)
	assert.Equal(t, "crossings.log", cfg.Storage.Path)
	assert.Equal(t, "models/travel_time_model.json", cfg.Model.Path)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusPort)
	assert.Equal(t, 5, cfg.Weather.TimeoutSeconds)
	assert.Equal(t, "crossing/alerts", cfg.Alerts.Topic)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"server": {"addr": ":7070"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", `addr = ":8000"`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadStorageBackend(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
storage:
  backend: postgres
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  addr: ":8000"
`)
	t.Setenv("CROSSING_SERVER__ADDR", ":8081")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Server.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
