package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is the application logger. It starts as slog's default so packages can
// log before Init runs (tests, CLI helpers).
var Log = slog.Default()

// Options selects the handler format and minimum level.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // json or text
	Output io.Writer
}

func Init(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		// JSON handler for production-ready logging
		handler = slog.NewJSONHandler(out, handlerOpts)
	}
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
