// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New builds a JSON logger writing to out and, when logFile is set, to a
// rotating file as well.
func New(service, level, logFile string, out io.Writer) *slog.Logger {
	w := out
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o750); err != nil {
			slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error(
				"failed to create log directory", "path", filepath.Dir(logFile), "error", err,
			)
		} else {
			w = io.MultiWriter(out, &lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     30,
				Compress:   true,
			})
		}
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}).WithAttrs([]slog.Attr{slog.String("service", service)})

	return slog.New(handler)
}

// Setup builds the logger and installs it as the slog default.
func Setup(service, level, logFile string) *slog.Logger {
	logger := New(service, level, logFile, os.Stdout)
	slog.SetDefault(logger)
	return logger
}
