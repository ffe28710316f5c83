// Package logging configures the process-wide slog logger. Logs never go to
// stdout, which belongs to the game's narration.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nathoo/manorquest/config"
)

// New builds a logger writing to w: JSON in production, text otherwise.
func New(cfg config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.Level(),
	}

	var handler slog.Handler
	if cfg.Production() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("service", "manorquest")
}

// Setup configures the global slog logger. Output goes to MANORQUEST_LOG_FILE
// when set, otherwise to fallback. The returned close func releases the
// log file.
func Setup(cfg config.Config, fallback io.Writer) (*slog.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := New(cfg, w)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// WithError adds error to logger context.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
