package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, _, err := Load(dir)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, def.ListenAddr, cfg.ListenAddr)
	assert.Equal(t, def.Logging, cfg.Logging)
	assert.Equal(t, 128, cfg.PreviewSize)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.DataDir = dir
	cfg.ListenAddr = "127.0.0.1:9999"
	cfg.PreviewSize = 256
	cfg.CatalogFile = "extra.yaml"
	require.NoError(t, Save(cfg))

	_, err := os.Stat(Path(dir))
	require.NoError(t, err)

	got, _, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("listen_addr: \":7000\"\n"), 0o644))
	t.Setenv("SVGCSS_LISTEN_ADDR", ":7001")
	t.Setenv("SVGCSS_LOGGING_LEVEL", "debug")

	cfg, _, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("listen_addr: [\n"), 0o644))

	_, _, err := Load(dir)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console", ""} {
		v := viper.New()
		v.Set("logging.level", "warn")
		v.Set("logging.format", format)

		logger, err := NewLogger(v)
		require.NoError(t, err, "format %q", format)
		assert.NotNil(t, logger)
	}
}

func TestNewLoggerInvalid(t *testing.T) {
	v := viper.New()
	v.Set("logging.level", "banana")
	_, err := NewLogger(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("logging.level", "info")
	v.Set("logging.format", "xml")
	_, err = NewLogger(v)
	assert.Error(t, err)
}
