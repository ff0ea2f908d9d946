package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at an empty directory so user config files
// and key files cannot leak into tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestNew_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxWorkers)
	assert.Equal(t, 0.5, cfg.BatchDelay)
	assert.Equal(t, 5000, cfg.SegmentSize)
	assert.Equal(t, "*/10 * * * *", cfg.WatchCron)
	assert.Contains(t, cfg.HistoryDB, "history.db")
	assert.True(t, cfg.HistoryEnabled())
}

func TestNew_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("DEEPL_API_KEY", "env-key")
	t.Setenv("DEEPL_TIMEOUT", "5")
	t.Setenv("DEEPL_MAX_WORKERS", "7")
	t.Setenv("DEEPL_BATCH_DELAY", "0.1")
	t.Setenv("DEEPL_SEGMENT_SIZE", "100")
	t.Setenv("DEEPL_HISTORY_DB", "off")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, 5, cfg.Timeout)
	assert.Equal(t, 7, cfg.MaxWorkers)
	assert.Equal(t, 0.1, cfg.BatchDelay)
	assert.Equal(t, 100, cfg.SegmentSize)
	assert.False(t, cfg.HistoryEnabled())
}

func TestNew_InvalidEnvFallsBackToDefault(t *testing.T) {
	isolateHome(t)
	t.Setenv("DEEPL_TIMEOUT", "not-a-number")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Timeout)
}

func TestNew_ConfigFileThenEnvWins(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".config", "deepl-cli")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"api_key":"file-key","batch_max_workers":9,"default_target_lang":"JA"}`), 0o644))

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, 9, cfg.MaxWorkers)
	assert.Equal(t, "JA", cfg.DefaultTargetLang)

	t.Setenv("DEEPL_API_KEY", "env-key")
	cfg, err = New()
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey, "environment overrides the config file")
	assert.Equal(t, 9, cfg.MaxWorkers)
}

func TestResolveAPIKey_Priority(t *testing.T) {
	home := isolateHome(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Empty(t, cfg.ResolveAPIKey(""))

	// Key file is the last resort.
	keyDir := filepath.Join(home, ".token", "deepl-cli")
	require.NoError(t, os.MkdirAll(keyDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(keyDir, "api_key"), []byte("file-key\n"), 0o600))
	assert.Equal(t, "file-key", cfg.ResolveAPIKey(""))

	// Merged env/config key beats the file.
	cfg.APIKey = "config-key"
	assert.Equal(t, "config-key", cfg.ResolveAPIKey(""))

	// Explicit flag beats everything.
	assert.Equal(t, "flag-key", cfg.ResolveAPIKey("flag-key"))
}

func TestAPIKeyLocations(t *testing.T) {
	home := isolateHome(t)

	locations := APIKeyLocations()
	require.Len(t, locations, 4)
	assert.Equal(t, filepath.Join(home, ".token", "deepl-cli", "api_key"), locations[0])
	assert.Equal(t, filepath.Join(home, ".deepl_apikey"), locations[3])
}
