package main

import (
	"fmt"
	"log/slog"

	"github.com/kinolab/cinema-api/internal/config"
)

// loadAppConfig loads configuration from the environment and config file,
// then logs what was found. Secret values are reported only as present or
// absent, never echoed.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	slog.Debug("Database configuration", "url_present", cfg.Database.URL != "")
	slog.Debug("Auth configuration", "jwt_secret_present", cfg.Auth.JWTSecret != "")
	if cfg.RateLimit.Enabled {
		slog.Debug("Rate limit configuration",
			"rps", cfg.RateLimit.RPS,
			"burst", cfg.RateLimit.Burst)
	}

	return cfg, nil
}
