package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Info("catalog loaded")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"catalog loaded"`)
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, err := New(Config{Level: "chatty", Format: "json", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestInitializeReplacesGlobal(t *testing.T) {
	previous := Logger
	t.Cleanup(func() {
		Logger = previous
		Sugar = previous.Sugar()
	})

	require.NoError(t, Initialize(Config{Level: "debug", Format: "console", Output: "stderr"}))
	assert.NotSame(t, previous, Logger)
	assert.NotNil(t, Sugar)
}
