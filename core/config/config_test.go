package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ".dat", cfg.Generate.Suffix)
	assert.Equal(t, []string{".dat-shm", ".dat-wal"}, cfg.Generate.Excluded)
	assert.Equal(t, "sha256", cfg.Generate.Algorithm)
	assert.Equal(t, 8192, cfg.Generate.ChunkSize)
	assert.Equal(t, 0, cfg.Generate.Workers)
	assert.Equal(t, 20000, cfg.Compare.ThresholdBlocks)
	assert.Equal(t, "text", cfg.Compare.Format)
	assert.Equal(t, 50, cfg.Compare.Histogram.Bins)
	assert.Equal(t, 40, cfg.Compare.Histogram.Width)
	assert.Equal(t, "to_sync.txt", cfg.Sync.Output)
	assert.Equal(t, "", cfg.Metrics.Textfile)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("COMPARE_THRESHOLD_BLOCKS", "100")
	t.Setenv("COMPARE_HISTOGRAM_BINS", "10")
	t.Setenv("GENERATE_WORKERS", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Compare.ThresholdBlocks)
	assert.Equal(t, 10, cfg.Compare.Histogram.Bins)
	assert.Equal(t, 3, cfg.Generate.Workers)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_DRIVER=sqlite\nDATABASE_PATH=/tmp/history.db\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("DATABASE_PATH")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "/tmp/history.db", cfg.Database.Path)
}
