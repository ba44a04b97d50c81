package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel is the verbosity of the diagnostic log file.
type LogLevel int

// Levels, lowest to highest verbosity. The claim flow logs resolution
// and transaction lifecycle events at debug, failures at error.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel maps a config or environment string to a level.
// Unknown values fall back to error.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "debug":
		return LogLevelDebug
	case "error":
		return LogLevelError
	default:
		return LogLevelError
	}
}

// String returns the level's config spelling.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	case LogLevelError:
		return "error"
	default:
		return "error"
	}
}

// tag returns the level marker written into each log line.
func (l LogLevel) tag() string {
	return "[" + strings.ToUpper(l.String()) + "]"
}

// Logger records the claim flow's diagnostic trail to a file under the
// mfbldr home directory. It is safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	out   *os.File
	path  string
}

// NewLogger opens the log file at path for appending, creating parent
// directories as needed. A level of off, or an empty path, yields a
// logger that discards everything without touching the filesystem.
func NewLogger(level LogLevel, path string) (*Logger, error) {
	l := &Logger{level: level, path: path}
	if level == LogLevelOff || path == "" {
		return l, nil
	}

	resolved, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(resolved, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	l.out = f
	l.path = resolved
	return l, nil
}

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}

// expandHome resolves a leading "~/" against the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil {
		return nil
	}
	return l.out.Close()
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Debug logs a lifecycle event: resolutions, broadcasts, confirmations.
func (l *Logger) Debug(format string, args ...any) {
	l.write(LogLevelDebug, format, args...)
}

// Error logs a failure.
func (l *Logger) Error(format string, args ...any) {
	l.write(LogLevelError, format, args...)
}

// Writer adapts the logger to io.Writer at a fixed level, one log line
// per Write call.
func (l *Logger) Writer(level LogLevel) io.Writer {
	return &levelWriter{logger: l, level: level}
}

func (l *Logger) write(level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil || l.level == LogLevelOff || level > l.level {
		return
	}

	_, _ = fmt.Fprintf(l.out, "%s %s %s\n",
		time.Now().Format(time.RFC3339Nano),
		level.tag(),
		fmt.Sprintf(format, args...))
}

type levelWriter struct {
	logger *Logger
	level  LogLevel
}

func (w *levelWriter) Write(p []byte) (int, error) {
	w.logger.write(w.level, "%s", strings.TrimSpace(string(p)))
	return len(p), nil
}
