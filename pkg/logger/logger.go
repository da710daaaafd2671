// Package logger configures the process-wide zerolog logger. Output goes to
// stderr: human-friendly console format on a terminal, JSON otherwise.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var (
	mu  sync.Mutex
	lgr *zerolog.Logger
)

// Init sets up the global logger at the given level ("debug", "info",
// "warn", "error"; anything else means info).
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()

	var out io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	l := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(level))
	lgr = &l
}

// Get returns the global logger. Before Init it returns a logger that
// discards everything, so library code can log unconditionally.
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if lgr == nil {
		l := zerolog.New(io.Discard)
		lgr = &l
	}
	return lgr
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
