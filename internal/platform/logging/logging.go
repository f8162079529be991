package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a LOG_LEVEL value onto a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", level)
}

// New builds a text logger at level. With a non-empty file the output goes
// to a size-rotated log file, otherwise to stderr. The returned closer must be
// closed on shutdown.
func New(level, file string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	var w io.WriteCloser = nopCloser{os.Stderr}
	if file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64, // MB
			MaxBackups: 5,
			MaxAge:     14,
			Compress:   true,
		}
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
