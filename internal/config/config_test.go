package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cbb-gamelogs/internal/features"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cbb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, StorageCSV, cfg.Storage)
	assert.Equal(t, 3*time.Second, cfg.Scraper.RequestInterval)
	assert.True(t, cfg.Scraper.Cache)
	assert.Equal(t, features.DefaultWarmup, cfg.Features.Warmup)
	assert.Equal(t, features.DefaultStats, cfg.Stats())
	assert.Equal(t, filepath.Join(DefaultDataDir, "cbb.db"), cfg.DatabasePath())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
data_dir: /tmp/cbb
storage: sqlite
scraper:
  workers: 4
  request_interval: 500ms
  max_retries: 2
features:
  warmup: 5
  stats: [FG%, ORtg]
`)
	t.Setenv("CBB_SCRAPER__WORKERS", "8")
	t.Setenv("CBB_FEATURES__WARMUP", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/cbb", cfg.DataDir)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, 8, cfg.Scraper.Workers, "environment beats the file")
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.RequestInterval)
	assert.Equal(t, 7, cfg.Features.Warmup)
	assert.Equal(t, []string{"FG%", "ORtg"}, cfg.Stats())
	assert.Equal(t, "/tmp/cbb/cbb.db", cfg.DatabasePath())
	assert.Equal(t, "/tmp/cbb/pages", cfg.CacheDir())

	sc := cfg.ScraperSettings()
	assert.Equal(t, uint64(2), sc.MaxRetries)
	assert.Equal(t, 8, sc.Workers)
}

func TestLoad_ConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "data_dir: /srv/cbb\n")
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/cbb", cfg.DataDir)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad level", "log_level: loud\n", "LogLevel"},
		{"bad storage", "storage: postgres\n", "Storage"},
		{"too many workers", "scraper:\n  workers: 64\n", "Workers"},
		{"negative warmup", "features:\n  warmup: -1\n", "Warmup"},
		{"bad url", "scraper:\n  base_url: not a url\n", "BaseURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_NormalizesCase(t *testing.T) {
	cfg := New()
	cfg.LogLevel = "WARN"
	cfg.Storage = "SQLite"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, StorageSQLite, cfg.Storage)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log_level", envKey("CBB_LOG_LEVEL"))
	assert.Equal(t, "scraper.base_url", envKey("CBB_SCRAPER__BASE_URL"))
	assert.Equal(t, "", envKey(EnvConfigFile))
}
