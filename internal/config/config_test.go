package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{
		"ORIENTATION_ENV", "ORIENTATION_DB", "ORIENTATION_DB_PATH", "ORIENTATION_LANGUAGE",
		"ORIENTATION_QUESTIONS_PATH", "ORIENTATION_LOG_LEVEL", "ORIENTATION_CERTIFICATE_DIR",
		"ORIENTATION_CERTIFICATE_ENABLED",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.DBPath)
	assert.Empty(t, cfg.Language)
	assert.True(t, cfg.Certificate.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, filepath.Join(dir, "state", "orientation", "orientation.log"), cfg.Log.File)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
language: es
certificate:
  enabled: false
  dir: /tmp/certs
log:
  level: debug
`), 0o644))

	cfg, err := Load(Options{ConfigFile: path, DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "es", cfg.Language)
	assert.False(t, cfg.Certificate.Enabled)
	assert.Equal(t, "/tmp/certs", cfg.Certificate.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadXDGConfigFile(t *testing.T) {
	dir := isolate(t)
	cfgDir := filepath.Join(dir, "config", "orientation")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("language: es\n"), 0o644))

	cfg, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Language)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml"), DotEnv: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ORIENTATION_LANGUAGE", "es")
	t.Setenv("ORIENTATION_DB", "/tmp/o.db")
	t.Setenv("ORIENTATION_LOG_LEVEL", "warn")

	cfg, err := Load(Options{DotEnv: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, "/tmp/o.db", cfg.DBPath)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("ORIENTATION_QUESTIONS_PATH=/data/bank.json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ORIENTATION_QUESTIONS_PATH") })

	cfg, err := Load(Options{DotEnv: envFile})
	require.NoError(t, err)
	assert.Equal(t, "/data/bank.json", cfg.QuestionsPath)
}
