package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quotedesk/internal/config"
)

// clearEnv unsets every variable the loader reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ALPHAVANTAGE_API_KEY", "ALPHAVANTAGE_BASE_URL", "REQUEST_TIMEOUT_SEC",
		"ALPHAVANTAGE_MAX_RPM", "ALPHAVANTAGE_BURST", "ALPHAVANTAGE_MIN_INTERVAL_SEC",
		"CACHE_TTL_SEC", "SEARCH_DEBOUNCE_MS", "RECENT_DB_PATH", "RECENT_MAX_ENTRIES",
		"LOG_LEVEL", "LOG_PRETTY",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.Equal(t, 15*time.Minute, cfg.CacheTTL())
	require.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	require.Equal(t, 10*time.Second, cfg.RequestTimeout())
	require.Equal(t, 20, cfg.Recent.MaxEntries)
	require.ErrorIs(t, cfg.Validate(), config.ErrMissingAPIKey)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadWithEnvFile(filepath.Join(t.TempDir(), "nope.json"), "")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoad_JSON(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"alphavantage": {"api_key": "file-key", "max_requests_per_minute": 75},
		"cache": {"ttl_sec": 60}
	}`), 0o600))

	cfg, err := config.LoadWithEnvFile(path, "")
	require.NoError(t, err)
	require.Equal(t, "file-key", cfg.AlphaVantage.APIKey)
	require.Equal(t, 75, cfg.AlphaVantage.MaxRequestsPerMinute)
	require.Equal(t, time.Minute, cfg.CacheTTL())
	// untouched fields keep their defaults
	require.Equal(t, 300, cfg.Search.DebounceMillis)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
alphavantage:
  api_key: yaml-key
  base_url: http://localhost:9999
search:
  debounce_ms: 150
recent:
  db_path: ""
log:
  level: debug
  pretty: true
`), 0o600))

	cfg, err := config.LoadWithEnvFile(path, "")
	require.NoError(t, err)
	require.Equal(t, "yaml-key", cfg.AlphaVantage.APIKey)
	require.Equal(t, "http://localhost:9999", cfg.AlphaVantage.BaseURL)
	require.Equal(t, 150*time.Millisecond, cfg.SearchDebounce())
	require.Empty(t, cfg.Recent.DBPath)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Log.Pretty)
}

func TestLoad_InvalidFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := config.LoadWithEnvFile(path, "")
	require.ErrorContains(t, err, "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"alphavantage": {"api_key": "file-key"}}`), 0o600))

	t.Setenv("ALPHAVANTAGE_API_KEY", "env-key")
	t.Setenv("ALPHAVANTAGE_BASE_URL", "http://mock/")
	t.Setenv("CACHE_TTL_SEC", "30")
	t.Setenv("SEARCH_DEBOUNCE_MS", "not-a-number")
	t.Setenv("RECENT_MAX_ENTRIES", "0")
	t.Setenv("ALPHAVANTAGE_MIN_INTERVAL_SEC", "12")
	t.Setenv("LOG_PRETTY", "yes")

	cfg, err := config.LoadWithEnvFile(path, "")
	require.NoError(t, err)
	require.Equal(t, "env-key", cfg.AlphaVantage.APIKey)
	require.Equal(t, "http://mock", cfg.AlphaVantage.BaseURL)
	require.Equal(t, 30*time.Second, cfg.CacheTTL())
	require.Equal(t, 12*time.Second, cfg.MinRequestInterval())
	require.True(t, cfg.Log.Pretty)

	// Assert: invalid values are ignored
	require.Equal(t, 300, cfg.Search.DebounceMillis)
	require.Equal(t, 20, cfg.Recent.MaxEntries)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ALPHAVANTAGE_API_KEY=dotenv-key\nLOG_LEVEL=warn\n"), 0o600))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.LoadWithEnvFile("", envFile)
	require.NoError(t, err)
	require.Equal(t, "dotenv-key", cfg.AlphaVantage.APIKey)
	// the real environment wins over the file
	require.Equal(t, "error", cfg.Log.Level)

	t.Cleanup(func() { _ = os.Unsetenv("ALPHAVANTAGE_API_KEY") })
}
