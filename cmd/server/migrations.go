package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/kinolab/cinema-api/internal/config"
	"github.com/kinolab/cinema-api/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

// migrationTableName is the table goose uses to track applied migrations.
// It must match the name the integration test harness configures.
const migrationTableName = "schema_migrations"

// sourceMigrationsDir is where new migration files are created. The create
// command writes to the source tree, so it only works from a checkout; all
// other commands run against the migrations embedded in the binary.
var sourceMigrationsDir = filepath.Join("internal", "platform", "postgres", "migrations")

// runMigrations executes the requested goose command against the configured
// database. It is called from main() instead of starting the server when the
// -migrate flag is set.
func runMigrations(cfg *config.Config, command, name string) error {
	migrationLogger := slog.Default().With(
		"component", "migrations",
		"command", command,
	)

	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "up", "down", "reset", "status", "version":
		// Handled below, against the embedded migrations.
	case "create":
		// Creating a migration file needs no database at all.
		if name == "" {
			return fmt.Errorf("migration name is required for 'create' command")
		}
		if _, err := os.Stat(sourceMigrationsDir); err != nil {
			return fmt.Errorf(
				"migrations directory %s not found (run from the repository root): %w",
				sourceMigrationsDir, err)
		}
		migrationLogger.Info("Creating new migration",
			"name", name,
			"directory", sourceMigrationsDir)
		return goose.Create(nil, sourceMigrationsDir, name, "sql")
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected up, down, reset, status, version, or create)",
			command)
	}

	migrationLogger.Info("Using database URL", "url", maskDatabaseURL(cfg.Database.URL))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			migrationLogger.Error("Error closing database connection", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	goose.SetBaseFS(postgres.MigrationsFS)

	startTime := time.Now()
	switch command {
	case "up":
		err = goose.Up(db, postgres.MigrationsDir)
	case "down":
		err = goose.Down(db, postgres.MigrationsDir)
	case "reset":
		err = goose.Reset(db, postgres.MigrationsDir)
	case "status":
		err = goose.Status(db, postgres.MigrationsDir)
	case "version":
		err = goose.Version(db, postgres.MigrationsDir)
	}
	if err != nil {
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	migrationLogger.Info("Migration command executed successfully",
		"duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// slogGooseLogger adapts the goose logger interface to use slog.
type slogGooseLogger struct{}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages
// to slog.Error. Unlike the standard Fatalf behavior, this does NOT call os.Exit,
// so main can handle application exit consistently.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		username := parsedURL.User.Username()
		parsedURL.User = url.UserPassword(username, "****")
		return parsedURL.String()
	}

	return dbURL
}
