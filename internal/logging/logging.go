// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Config selects where and how logs are written.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json (default) or text
	File   string // empty means stderr
}

// ConfigFromEnv reads LSAT_LOG_LEVEL, LSAT_LOG_FORMAT and LSAT_LOG_FILE.
func ConfigFromEnv() Config {
	return Config{
		Level:  os.Getenv("LSAT_LOG_LEVEL"),
		Format: os.Getenv("LSAT_LOG_FORMAT"),
		File:   os.Getenv("LSAT_LOG_FILE"),
	}
}

// Init builds a logger from cfg and installs it as the slog default. Logs go
// to stderr unless a file is configured, in which case they rotate through
// lumberjack. When the log directory cannot be created the returned logger
// still writes to stderr and the error is reported.
func Init(cfg Config) (*slog.Logger, error) {
	return initTo(cfg, os.Stderr)
}

func initTo(cfg Config, fallback io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var (
		out    io.Writer = fallback
		outErr error
	)
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			outErr = fmt.Errorf("create log directory: %w", err)
		} else {
			out = &lumberjack.Logger{
				Filename:   path,
				MaxSize:    maxLogSizeMB,
				MaxBackups: maxLogBackups,
				MaxAge:     maxLogAgeDays,
				Compress:   true,
			}
		}
	}

	logger := slog.New(newHandler(cfg.Format, out, opts))
	slog.SetDefault(logger)
	return logger, outErr
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return slog.NewJSONHandler(out, opts)
	}
}
