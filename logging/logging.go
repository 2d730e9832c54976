// Package logging builds the process logger from a config.LogConfig.
//
// Records go to the given writer (normally stderr) unless a logfile is
// configured, in which case they go to a size- and age-rotated file.
// New never installs a global logger; callers pass the result explicitly.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/lumberjack"

	"github.com/katalvlaran/pathlab/config"
)

// New returns a logger for c. The returned io.Closer releases the log file;
// it is a no-op when logging to out.
func New(c config.LogConfig, out io.Writer) (*slog.Logger, io.Closer) {
	w := out
	var closer io.Closer = nopCloser{}
	if c.Logfile != "" {
		l := &lumberjack.Logger{
			Filename: c.Logfile,
			MaxSize:  c.MaxSize, // megabytes
			MaxAge:   c.MaxAge,  // days
		}
		w, closer = l, l
	}

	logger := newLogger(c.Level, c.Format, w)
	if c.Logfile != "" {
		logger.Debug("logging to rotating file",
			"path", c.Logfile,
			"max_size", humanize.IBytes(uint64(c.MaxSize)<<20),
			"max_age_days", c.MaxAge)
	}

	return logger, closer
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
