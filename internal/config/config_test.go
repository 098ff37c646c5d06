package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.keyfold", cfg.Home)
	assert.Equal(t, "auto", cfg.Output.DefaultFormat)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)

	cfg := Defaults()
	cfg.Home = dir
	cfg.Output.DefaultFormat = "json"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.Home)
	assert.Equal(t, "json", loaded.Output.DefaultFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("home: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestStoreDir(t *testing.T) {
	cfg := Defaults()
	cfg.Home = "/tmp/kf-test"
	assert.Equal(t, "/tmp/kf-test/store", cfg.StoreDir())

	cfg.Store.Dir = "/var/lib/keyfold"
	assert.Equal(t, "/var/lib/keyfold", cfg.StoreDir())
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvHome, "/custom/home")
	t.Setenv(EnvOutputFormat, "JSON")
	t.Setenv(EnvVerbose, "true")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "/custom/home", cfg.Home)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestApplyEnvironmentNoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "1")

	cfg := Defaults()
	ApplyEnvironment(cfg)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelOff, ParseLogLevel("off"))
	assert.Equal(t, LogLevelOff, ParseLogLevel("none"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelError, ParseLogLevel("bogus"))
}

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")

	logger, err := NewLogger(LogLevelDebug, path)
	require.NoError(t, err)

	logger.Debug("debug %d", 1)
	logger.Error("error %s", "two")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] debug 1")
	assert.Contains(t, string(data), "[ERROR] error two")
}

func TestLoggerLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	logger, err := NewLogger(LogLevelError, path)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Error("shown")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNullLoggerIsSafe(t *testing.T) {
	logger := NullLogger()
	logger.Debug("ignored")
	logger.Error("ignored")
	assert.NoError(t, logger.Close())
}
