package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogLevelOff, ParseLogLevel("off"))
	assert.Equal(t, LogLevelOff, ParseLogLevel("NONE"))
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelError, ParseLogLevel("bogus"))
}

func TestLoggerWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "test.log")
	logger, err := NewLogger(LogLevelDebug, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Debug("debug %s", "message")
	logger.Error("error message")

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] debug message")
	assert.Contains(t, string(data), "[ERROR] error message")
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewLogger(LogLevelError, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	logger.Debug("should not appear")
	logger.Error("should appear")

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should not appear")
	assert.Contains(t, string(data), "should appear")
}

func TestLoggerOff(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger(LogLevelOff, filepath.Join(t.TempDir(), "unused.log"))
	require.NoError(t, err)

	// No file should be opened when logging is off
	logger.Error("dropped")
	require.NoError(t, logger.Close())
}

func TestNullLogger(t *testing.T) {
	t.Parallel()

	logger := NullLogger()
	logger.Debug("dropped")
	logger.Error("dropped")
	assert.Equal(t, LogLevelOff, logger.Level())
}

func TestLoggerWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewLogger(LogLevelDebug, path)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	w := logger.Writer(LogLevelDebug)
	n, err := w.Write([]byte("from writer\n"))
	require.NoError(t, err)
	assert.Equal(t, len("from writer\n"), n)

	data, err := os.ReadFile(path) // #nosec G304
	require.NoError(t, err)
	assert.Contains(t, string(data), "from writer")
}
