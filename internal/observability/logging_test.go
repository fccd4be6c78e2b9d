package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Kingly77/VentureTextAdventure/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "json"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_Console(t *testing.T) {
	cfg := config.LoggingConfig{Level: "debug", Format: "console"}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	cfg := config.LoggingConfig{Level: "trace", Format: "json"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	cfg := config.LoggingConfig{Level: "info", Format: "xml"}
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_AllLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := config.LoggingConfig{Level: level, Format: "json"}
		logger, err := NewLogger(cfg)
		require.NoError(t, err, "level %q should be valid", level)
		assert.NotNil(t, logger)
	}
}

func TestNewLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venture.log")
	cfg := config.LoggingConfig{Level: "info", Format: "json", Output: path}
	logger, err := NewLogger(cfg)
	require.NoError(t, err)

	logger.Info("hero moved", zap.String("room", "yard"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"room":"yard"`)
	assert.Contains(t, string(data), "hero moved")
	assert.Contains(t, string(data), `"app":"venture"`)
}

func TestNewLogger_ConsoleFileHasNoStacktrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venture.log")
	logger, err := NewLogger(config.LoggingConfig{Level: "warn", Format: "console", Output: path})
	require.NoError(t, err)

	logger.Warn("script hook failed")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN")
	assert.Contains(t, string(data), "script hook failed")
	assert.NotContains(t, string(data), "\x1b[", "no colour codes in a file sink")
	assert.Equal(t, 1, strings.Count(string(data), "\n"), "no stack trace")
}

func TestForSession(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	first := ForSession(zap.New(core), "Tamsin")
	second := ForSession(zap.New(core), "Tamsin")
	first.Info("turn")
	second.Info("turn")

	entries := logs.All()
	require.Len(t, entries, 2)
	a, b := entries[0].ContextMap(), entries[1].ContextMap()
	assert.Equal(t, "Tamsin", a["hero"])
	assert.NotEmpty(t, a["session_id"])
	assert.NotEqual(t, a["session_id"], b["session_id"])
}
