// Package logger provides structured logging functionality for the application.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/kinolab/cinema-api/internal/config"
)

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Setup builds the JSON logger described by the server config and installs
// it as the process-wide default, so code without an injected logger (and
// the slog package functions) shares the same output.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	level, ok := levelNames[strings.ToLower(cfg.LogLevel)]
	if !ok {
		// The JSON logger is not configured yet, so complain on stderr.
		level = slog.LevelInfo
		slog.New(slog.NewTextHandler(os.Stderr, nil)).
			Warn("invalid log level configured, using default level",
				"configured_level", cfg.LogLevel,
				"default_level", "info")
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return log, nil
}
