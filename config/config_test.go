package config

import (
	"os"
	"path/filepath"
	"testing"

	"book-pricer/feed"
	"book-pricer/logger"
	"book-pricer/orderbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pricer.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(200), cfg.TargetSize)
	assert.Equal(t, orderbook.MapStore, cfg.StoreType())
	assert.Equal(t, logger.InfoLevel, cfg.Level())
	assert.False(t, cfg.DebugSnapshot)
	assert.Equal(t, "json", cfg.LogEncoding)
	assert.Equal(t, []string{"stderr"}, cfg.LogOutput)
	assert.Equal(t, feed.DefaultGeneratorOptions(), cfg.Generator.Options())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
target_size = 50
store = "bst"
log_level = "debug"

[generator]
seed = 9
events = 1000
`)
	t.Setenv("PRICER_STORE", "array")
	t.Setenv("PRICER_GENERATOR_EVENTS", "77")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(50), cfg.TargetSize)
	assert.Equal(t, orderbook.ArrayStore, cfg.StoreType())
	assert.Equal(t, logger.DebugLevel, cfg.Level())
	assert.Equal(t, int64(9), cfg.Generator.Seed)
	assert.Equal(t, 77, cfg.Generator.Events)
	assert.Equal(t, int64(300), cfg.Generator.MaxSize, "unset keys keep defaults")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "target_size = \"lots\""))
	assert.Error(t, err)

	t.Setenv("PRICER_TARGET_SIZE", "many")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.TargetSize = 0
	cfg.Store = "skiplist"
	cfg.LogLevel = "loud"
	cfg.Generator.ReduceRatio = 1
	cfg.LogEncoding = "yaml"
	cfg.LogOutput = nil

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"target_size", "store", "log_level", "reduce_ratio", "log_encoding", "log_output"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestLoggerOptions_FileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "pricer.log")
	path := writeConfig(t, `
log_level = "warn"
log_encoding = "json"
`)
	t.Setenv("PRICER_LOG_OUTPUT", logPath)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{logPath}, cfg.LogOutput)

	log, err := logger.NewLogger(cfg.LoggerOptions()...)
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("kept", logger.NewField("store", "bst"))
	require.NoError(t, log.Sync())

	body, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"message":"kept"`)
	assert.Contains(t, string(body), `"store":"bst"`)
	assert.NotContains(t, string(body), "dropped")
}
