package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, 0)
)

// LevelFor maps the server's 0-9 verbosity scale onto zerolog levels.
//
//	0     error only
//	1-2   warnings
//	3-4   info
//	5-9   debug
func LevelFor(level int) zerolog.Level {
	switch {
	case level >= 5:
		return zerolog.DebugLevel
	case level >= 3:
		return zerolog.InfoLevel
	case level >= 1:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func newLogger(w io.Writer, level int) zerolog.Logger {
	return zerolog.New(w).
		Level(LevelFor(level)).
		With().
		Timestamp().
		Logger()
}

// Initialize sets up the global logger. Output must never be stdout in stdio
// mode, since stdout carries the MCP protocol.
func Initialize(level int, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, level)
}

// Logger returns the global structured logger
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Debug logs at debug level (level 5-9)
func Debug(format string, v ...interface{}) {
	Logger().Debug().Msg(fmt.Sprintf(format, v...))
}

// Info logs at info level (level 3-9)
func Info(format string, v ...interface{}) {
	Logger().Info().Msg(fmt.Sprintf(format, v...))
}

// Warn logs at warning level (level 1-9)
func Warn(format string, v ...interface{}) {
	Logger().Warn().Msg(fmt.Sprintf(format, v...))
}

// Error logs at error level (level 0-9)
func Error(format string, v ...interface{}) {
	Logger().Error().Msg(fmt.Sprintf(format, v...))
}
