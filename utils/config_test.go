package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "beacon.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://1kgenomes.ga4gh.org", cfg.Ga4gh.Url)
	assert.Equal(t, "5000", cfg.Api.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "ga4gh", cfg.Store.Backend)
	assert.Equal(t, 100, cfg.Ga4gh.PageSize)
	assert.Equal(t, 5, cfg.Ga4gh.MaxRetries)
	assert.Equal(t, 30, cfg.Api.QueryTimeoutSeconds)
	assert.Equal(t, 60, cfg.Beacon.DescriptorRefreshMinutes)
}

func TestLoadConfigFileThenEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
logLevel: debug
ga4gh:
  url: http://file.example.org
  pageSize: 25
store:
  datasetId: from-file
`)
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("BEACON_GA4GH_URL", "http://env.example.org")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example.org", cfg.Ga4gh.Url)
	assert.Equal(t, 25, cfg.Ga4gh.PageSize)
	assert.Equal(t, "from-file", cfg.Store.DatasetId)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "5000", cfg.Api.Port)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")
	t.Setenv("BEACON_STORE_BACKEND", "mongo")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "absent.yml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSplitCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitCommaSeparated([]string{"a, b", "", "c,"}))
	assert.Equal(t, []string{}, SplitCommaSeparated(nil))
}

func TestNewLogger(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
