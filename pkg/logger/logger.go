package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = newLogger(os.Stdout, "info", "console")
)

// Init replaces the process logger. format is "console" or "json".
func Init(level, format string) {
	SetOutput(os.Stdout, level, format)
}

// SetOutput is Init with an explicit writer, used by tests.
func SetOutput(w io.Writer, level, format string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, level, format)
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func current() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := log
	return &l
}

func Info(format string, v ...interface{}) {
	current().Info().Msg(fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	current().Error().Msg(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	current().Debug().Msg(fmt.Sprintf(format, v...))
}

func Warn(format string, v ...interface{}) {
	current().Warn().Msg(fmt.Sprintf(format, v...))
}

// With returns a logger carrying extra fields, for request or session scoped logs.
func With(fields map[string]interface{}) zerolog.Logger {
	return current().With().Fields(fields).Logger()
}
