// Command create-admin creates a staff user account. Catalog writes require
// a staff account, so a fresh deployment needs one seeded before the API can
// be administered.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/kinolab/cinema-api/internal/config"
	"github.com/kinolab/cinema-api/internal/domain"
	"github.com/kinolab/cinema-api/internal/platform/logger"
	"github.com/kinolab/cinema-api/internal/platform/postgres"
	"github.com/kinolab/cinema-api/internal/store"
)

func main() {
	email := flag.String("email", "", "email address for the new staff account")
	password := flag.String("password", "",
		"password for the new staff account (falls back to CINEMA_ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		// Passing secrets as flags leaks them into shell history, so the
		// environment variable is the preferred route.
		*password = os.Getenv("CINEMA_ADMIN_PASSWORD")
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -email <address> [-password <password>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	if err := createAdmin(cfg, *email, *password); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			appLogger.Error("A user with this email already exists", "email", *email)
		} else {
			appLogger.Error("Failed to create staff user", "error", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Staff user %s created\n", *email)
}

// createAdmin connects to the configured database and inserts a staff user.
func createAdmin(cfg *config.Config, email, password string) error {
	user, err := domain.NewUser(email, password)
	if err != nil {
		return fmt.Errorf("invalid user details: %w", err)
	}
	user.IsStaff = true

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// The store hashes the plaintext password with the configured cost.
	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	if err := userStore.Create(ctx, user); err != nil {
		return err
	}

	return nil
}
