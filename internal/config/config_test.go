package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
storage_driver = "bolt"
max_image_mb = 2
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("SUBMIT_RATE_PER_MIN", "5")

	cfg := Load()
	require.Equal(t, "9100", cfg.Port)
	require.Equal(t, DriverBolt, cfg.StorageDriver)
	require.Equal(t, 2, cfg.MaxImageMB)
	require.Equal(t, int64(2*1024*1024), cfg.MaxImageBytes())
	require.Equal(t, 5, cfg.SubmitRatePerMin)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileMissing(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), Defaults())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	cfg.StorageDriver = "sqlite"
	require.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.MaxImageMB = 0
	require.Error(t, cfg.Validate())
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_IMAGE_MB", "lots")
	require.Equal(t, 10, getEnvInt("MAX_IMAGE_MB", 10))
}
