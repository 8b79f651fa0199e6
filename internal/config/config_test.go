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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 24*time.Hour, cfg.GCTTL())
	assert.Equal(t, 30*time.Minute, cfg.GCInterval())
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
data_dir: /var/lib/filestore
max_upload_bytes: 1024
log:
  level: debug
  format: console
gc:
  ttl_hours: 2
  interval_min: 5
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DATA_DIR", "/srv/files")
	t.Setenv("GC_INTERVAL_MIN", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/srv/files", cfg.DataDir)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 2, cfg.GC.TTLHours)
	assert.Equal(t, 1, cfg.GC.IntervalMin)
}

func TestLoad_PartialYAMLKeepsDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "listen_addr: \":7000\"\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, defaultDataDir, cfg.DataDir)
	assert.Equal(t, int64(defaultMaxUploadBytes), cfg.MaxUploadBytes)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", writeConfig(t, "listen_addr: [oops"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad env int", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("MAX_UPLOAD_BYTES", "lots")
		_, err := Load()
		assert.ErrorContains(t, err, "MAX_UPLOAD_BYTES")
	})

	t.Run("negative limit", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("MAX_UPLOAD_BYTES", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.DataDir = " "
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ListenAddr = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.GC.TTLHours = -1
	assert.Error(t, cfg.Validate())
}
