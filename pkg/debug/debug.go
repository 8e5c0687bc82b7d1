// Package debug provides opt-in debug logging for sentidash.
//
// Logging is enabled by setting SENTIDASH_DEBUG:
//
//	SENTIDASH_DEBUG=1 sentidash
//
// The TUI owns stdout and stderr, so messages go to
// $XDG_STATE_HOME/sentidash/debug.log (or ~/.local/state/...). Setting
// SENTIDASH_DEBUG=stderr logs to stderr instead, which is handy with
// -snapshot. When disabled every function is a no-op.
//
//	defer debug.LogEnterExit("derive")()
//	debug.Logw("preset selected", "preset", p, "start", r.Start)
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
	logFile *os.File
)

func init() {
	switch v := os.Getenv("SENTIDASH_DEBUG"); v {
	case "", "0", "false":
	case "stderr":
		SetOutput(os.Stderr)
	default:
		if err := openLogFile(); err != nil {
			SetOutput(os.Stderr)
			logger.Warn("debug log file unavailable, using stderr", "err", err)
		}
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "sentidash",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000000",
	})
}

// LogPath returns where the debug log file lives.
func LogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.TempDir()
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "sentidash", "debug.log")
}

func openLogFile() error {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	SetOutput(f)
	mu.Lock()
	logFile = f
	mu.Unlock()
	return nil
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetOutput enables logging to w. Passing nil disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	enabled = true
	logger = newLogger(w)
}

// Close flushes and closes the log file, if one was opened.
func Close() error {
	mu.Lock()
	f := logFile
	logFile = nil
	enabled = false
	logger = nil
	mu.Unlock()
	if f == nil {
		return nil
	}
	return f.Close()
}

func current() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return logger
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

// Logw writes a message with key/value pairs.
func Logw(msg string, keyvals ...any) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// LogTiming logs how long name took.
func LogTiming(name string, d time.Duration) {
	if l := current(); l != nil {
		l.Debug("timing", "op", name, "took", d)
	}
}

// LogIf logs only when cond holds.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	Log(format, args...)
}

// LogEnterExit logs entry now and exit with elapsed time when the returned
// func runs.
func LogEnterExit(name string) func() {
	l := current()
	if l == nil {
		return func() {}
	}
	l.Debug("-> " + name)
	start := time.Now()
	return func() {
		l.Debug("<- "+name, "took", time.Since(start))
	}
}

// Dump logs a value with its type.
func Dump(name string, v any) {
	if l := current(); l != nil {
		l.Debugf("%s: %T = %+v", name, v, v)
	}
}
