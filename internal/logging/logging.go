package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level represents logging severity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// slogTrace sits below slog.LevelDebug so trace output can be filtered separately.
const slogTrace = slog.LevelDebug - 4

var (
	currentLevel     = LevelInfo
	currentVerbosity = 0
	levelVar         = new(slog.LevelVar)
	logger           = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == slogTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetOutput redirects log output. Used by tests and the interactive shell.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// SetVerbosity configures the logger from the difference between -v and -q counts.
// -2 or less logs errors only, 0 logs info, 2 or more logs everything.
func SetVerbosity(count int) {
	if count < -2 {
		count = -2
	}
	if count > 2 {
		count = 2
	}
	currentVerbosity = count
	switch count {
	case -2:
		currentLevel = LevelError
	case -1:
		currentLevel = LevelWarn
	case 0:
		currentLevel = LevelInfo
	case 1:
		currentLevel = LevelDebug
	default:
		currentLevel = LevelTrace
	}
	levelVar.Set(toSlog(currentLevel))
}

// Verbosity returns the stored -v/-q balance.
func Verbosity() int {
	return currentVerbosity
}

// LevelName returns current level label.
func LevelName() string {
	return LevelToString(currentLevel)
}

// LevelToString converts a Level to human readable text.
func LevelToString(l Level) string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel returns Level + verbosity count from string.
func ParseLevel(s string) (Level, int, error) {
	switch strings.ToLower(s) {
	case "error":
		return LevelError, -2, nil
	case "warn", "warning":
		return LevelWarn, -1, nil
	case "info":
		return LevelInfo, 0, nil
	case "debug":
		return LevelDebug, 1, nil
	case "trace":
		return LevelTrace, 2, nil
	default:
		return LevelInfo, currentVerbosity, fmt.Errorf("unknown level %s", s)
	}
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelInfo:
		return slog.LevelInfo
	case LevelDebug:
		return slog.LevelDebug
	default:
		return slogTrace
	}
}

func logf(l Level, format string, args ...any) {
	lvl := toSlog(l)
	if !logger.Enabled(context.Background(), lvl) {
		return
	}
	logger.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Errorf always prints.
func Errorf(format string, args ...any) {
	logf(LevelError, format, args...)
}

func Warnf(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

func Infof(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

func Debugf(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

func Tracef(format string, args ...any) {
	logf(LevelTrace, format, args...)
}
