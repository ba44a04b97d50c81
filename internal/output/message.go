package output

import (
	"fmt"
	"io"
	"os"
)

// Notices are the CLI analog of the claim page's toasts: one prefixed
// line per event. Info and Success go to stdout; warnings go to stderr
// so they survive output redirection.
const (
	infoPrefix    = "ℹ️  "
	warnPrefix    = "⚠️  "
	successPrefix = "✅ "
)

// Notice destinations, swappable in tests.
//
//nolint:gochecknoglobals // package-level writers keep the notice API flat
var (
	noticeOut io.Writer = os.Stdout
	noticeErr io.Writer = os.Stderr
)

func notice(w io.Writer, prefix, msg string) {
	_, _ = fmt.Fprintln(w, prefix+msg)
}

// Info reports a neutral progress event, like a broadcast transaction hash.
func Info(msg string) {
	notice(noticeOut, infoPrefix, msg)
}

// Infof is Info with formatting.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Warn reports a recoverable problem without aborting the command.
func Warn(msg string) {
	notice(noticeErr, warnPrefix, msg)
}

// Warnf is Warn with formatting.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Success reports a completed claim or import.
func Success(msg string) {
	notice(noticeOut, successPrefix, msg)
}

// Successf is Success with formatting.
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}
