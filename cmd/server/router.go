package main

import (
	"expvar"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kinolab/cinema-api/internal/api"
	apiMiddleware "github.com/kinolab/cinema-api/internal/api/middleware"
	"github.com/kinolab/cinema-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware. RealIP must run before the rate limiter so
	// clients behind a proxy are throttled by their real address rather than
	// the proxy's.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling
	r.Use(apiMiddleware.Metrics)

	rateLimiter := apiMiddleware.NewRateLimitMiddleware(app.config.RateLimit)
	r.Use(rateLimiter.Limit)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		&app.config.Auth,
	)
	movieHandler := api.NewMovieHandler(app.movieStore, app.catalogService, app.logger)
	genreHandler := api.NewGenreHandler(app.genreStore, app.logger)
	actorHandler := api.NewActorHandler(app.actorStore, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	staffMiddleware := apiMiddleware.NewStaffMiddleware(app.userStore)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Catalog reads require a valid token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/movies", movieHandler.ListMovies)
			r.Get("/movies/{id}", movieHandler.GetMovie)
			r.Get("/genres", genreHandler.ListGenres)
			r.Get("/genres/{id}", genreHandler.GetGenre)
			r.Get("/actors", actorHandler.ListActors)
			r.Get("/actors/{id}", actorHandler.GetActor)

			// Catalog writes additionally require a staff account
			r.Group(func(r chi.Router) {
				r.Use(staffMiddleware.RequireStaff)

				r.Post("/movies", movieHandler.CreateMovie)
				r.Put("/movies/{id}", movieHandler.UpdateMovie)
				r.Delete("/movies/{id}", movieHandler.DeleteMovie)

				r.Post("/genres", genreHandler.CreateGenre)
				r.Put("/genres/{id}", genreHandler.UpdateGenre)
				r.Delete("/genres/{id}", genreHandler.DeleteGenre)

				r.Post("/actors", actorHandler.CreateActor)
				r.Put("/actors/{id}", actorHandler.UpdateActor)
				r.Delete("/actors/{id}", actorHandler.DeleteActor)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
			"status":      "available",
			"environment": app.config.Server.Environment,
		})
	})

	// Expose the expvar metrics maintained by the metrics middleware
	r.Method(http.MethodGet, "/debug/vars", expvar.Handler())

	return r
}
