package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// TimeFormat is the timestamp layout that prefixes every line
const TimeFormat = "2006-01-02 15:04:05"

// Logger is the logging capability handed to every component
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	// Named returns a logger tagging lines with the given module name
	Named(module string) Logger
}

// output is shared by a leveled logger and everything derived from it via Named
type output struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// LeveledLogger writes "timestamp - module - LEVEL - message" lines
type LeveledLogger struct {
	level   LogLevel
	verbose bool
	module  string
	out     *output
}

// NewLogger creates a logger writing to stderr with the given level and verbose mode
func NewLogger(level string, verbose bool) *LeveledLogger {
	return NewLoggerTo(os.Stderr, level, verbose)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, level string, verbose bool) *LeveledLogger {
	return &LeveledLogger{
		level:   parseLogLevel(level),
		verbose: verbose,
		module:  "doc_to_json",
		out:     &output{w: w, now: time.Now},
	}
}

// Named returns a copy of the logger that reports the given module
func (l *LeveledLogger) Named(module string) Logger {
	clone := *l
	clone.module = module
	return &clone
}

// Debug logs debug information. Verbose mode lowers the threshold to debug.
func (l *LeveledLogger) Debug(format string, args ...interface{}) {
	if l.level <= LevelDebug || l.verbose {
		l.log("DEBUG", format, args...)
	}
}

// Info logs informational messages
func (l *LeveledLogger) Info(format string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.log("INFO", format, args...)
	}
}

// Warn logs warning messages
func (l *LeveledLogger) Warn(format string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.log("WARNING", format, args...)
	}
}

// Error logs error messages
func (l *LeveledLogger) Error(format string, args ...interface{}) {
	if l.level <= LevelError {
		l.log("ERROR", format, args...)
	}
}

func (l *LeveledLogger) log(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	fmt.Fprintf(l.out.w, "%s - %s - %s - %s\n", l.out.now().Format(TimeFormat), l.module, level, message)
}

// parseLogLevel converts string level to LogLevel
func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// DefaultLogger returns a default logger instance
func DefaultLogger() *LeveledLogger {
	return NewLogger("info", false)
}

type nopLogger struct{}

// Nop returns a logger that discards everything
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (n nopLogger) Named(string) Logger        { return n }
