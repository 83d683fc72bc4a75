// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config selects the handler and minimum level.
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // text, json, color
	Writer io.Writer // defaults to os.Stderr
}

// New returns a logger for cfg. Unknown levels and formats are reported as
// errors; the returned logger is usable either way and uses text/info.
func New(cfg Config) (*slog.Logger, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	var errs []string
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		errs = append(errs, err.Error())
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "color":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", cfg.Format))
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if len(errs) > 0 {
		return logger, fmt.Errorf("logging: %s", strings.Join(errs, "; "))
	}
	return logger, nil
}

// ParseLevel maps a level name to a slog.Level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
