package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IDENTISEARCH_DATA_DIR", "/var/lib/identisearch/details")
	t.Setenv("IDENTISEARCH_OVER_FETCH", "25")
	t.Setenv("IDENTISEARCH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/identisearch/details", cfg.DataDir)
	assert.Equal(t, 25, cfg.OverFetch)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().IndexDir, cfg.IndexDir)
	assert.Equal(t, Default().Fuzziness, cfg.Fuzziness)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identisearch.yaml")
	yaml := "over_fetch: 5\nfuzziness: 2\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("IDENTISEARCH_CONFIG", path)
	t.Setenv("IDENTISEARCH_FUZZINESS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.OverFetch, "file value applies")
	assert.Equal(t, 0, cfg.Fuzziness, "env wins over file")
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("IDENTISEARCH_OVER_FETCH", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("IDENTISEARCH_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
