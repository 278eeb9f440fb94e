package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kinolab/cinema-api/internal/config"
	"github.com/kinolab/cinema-api/internal/platform/postgres"
	"github.com/kinolab/cinema-api/internal/service"
	"github.com/kinolab/cinema-api/internal/service/auth"
	"github.com/kinolab/cinema-api/internal/store"
)

// application bundles the shared dependencies so wiring and cleanup live in
// one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	movieStore store.MovieStore
	genreStore store.GenreStore
	actorStore store.ActorStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	catalogService   service.CatalogService
}

// newApplication wires every service and store on top of the already
// established config, logger and database pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost)
	app.movieStore = postgres.NewPostgresMovieStore(db, logger)
	app.genreStore = postgres.NewPostgresGenreStore(db)
	app.actorStore = postgres.NewPostgresActorStore(db)

	// The catalog service needs pool access for its transactions, so the
	// movie store is wrapped in a repository adapter.
	movieRepo := service.NewMovieRepositoryAdapter(app.movieStore, db)
	app.catalogService, err = service.NewCatalogService(movieRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run builds the router and serves requests until the context is cancelled
// or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources at shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
