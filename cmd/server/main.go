// Package main implements the entry point for the cinema catalog API
// server, which manages a movie catalog with genres and actors behind
// JWT-authenticated endpoints.
package main

import (
	"context"
	"flag"
	"log"
	"os"
)

// main wires the application together: it loads configuration, sets up
// logging, optionally runs database migrations, and otherwise connects to
// the database and starts the HTTP server.
func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version, create) and exit")
	migrationName := flag.String("name", "",
		"name of the new migration file when using -migrate create")
	flag.Parse()

	// Configuration and logging come first so every later failure is
	// reported through the structured logger.
	cfg, err := loadAppConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := setupAppLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	// Migration commands run instead of the server, not alongside it.
	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationName); err != nil {
			appLogger.Error("Migration failed",
				"command", *migrateCmd,
				"error", err)
			os.Exit(1)
		}
		return
	}

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		os.Exit(1)
	}

	if err := app.Run(context.Background()); err != nil {
		appLogger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
