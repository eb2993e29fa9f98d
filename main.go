package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/handlers"
	"github.com/cinelog/cinelog/lib/auth"
	"github.com/cinelog/cinelog/lib/catalog"
	"github.com/cinelog/cinelog/lib/db"
	"github.com/cinelog/cinelog/lib/health"
	"github.com/cinelog/cinelog/lib/store"
	"github.com/cinelog/cinelog/lib/tmdb"
)

type config struct {
	port         string
	databasePath string
	tmdbAPIKey   string
	tmdbBaseURL  string
	secret       string
}

func loadConfig() (config, error) {
	// .env is a development convenience; in production everything comes
	// from real environment variables.
	_ = godotenv.Load()

	cfg := config{
		port:         os.Getenv("PORT"),
		databasePath: os.Getenv("DATABASE_PATH"),
		tmdbAPIKey:   os.Getenv("TMDB_API_KEY"),
		tmdbBaseURL:  os.Getenv("TMDB_BASE_URL"),
		secret:       os.Getenv("SESSION_SECRET"),
	}
	if cfg.port == "" {
		cfg.port = "8080"
	}
	if cfg.databasePath == "" {
		cfg.databasePath = "cinelog.db"
	}
	if cfg.tmdbAPIKey == "" {
		return cfg, errors.New("TMDB_API_KEY must be set")
	}
	if cfg.secret == "" {
		return cfg, errors.New("SESSION_SECRET must be set")
	}
	return cfg, nil
}

// App holds the wired dependencies for the HTTP surface.
type App struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	store   store.Store
	auth    *auth.Service
	tmdb    *tmdb.Client
	router  *chi.Mux
	logger  *slog.Logger
}

// NewApp wires the application from configuration.
func NewApp(cfg config, logger *slog.Logger) (*App, error) {
	gdb, err := db.Open(cfg.databasePath, logger)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(context.Background(), gdb, logger); err != nil {
		return nil, err
	}

	var opts []tmdb.Option
	if cfg.tmdbBaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.tmdbBaseURL))
	}
	client := tmdb.NewClient(cfg.tmdbAPIKey, logger, opts...)

	app := &App{
		db:      gdb,
		catalog: catalog.New(client, logger),
		store:   store.New(gdb),
		auth:    auth.NewService(cfg.secret),
		tmdb:    client,
		router:  chi.NewRouter(),
		logger:  logger,
	}
	app.setupRoutes()
	return app, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(rateLimit(rate.NewLimiter(50, 100)))

	a.router.Get("/healthz", health.Check(a.db, a.tmdb))

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/register", handlers.Register(a.store, a.auth))
		r.Post("/login", handlers.Login(a.store, a.auth))

		r.Get("/movies", handlers.Movies(a.catalog))
		r.Get("/movies/search", handlers.SearchMovies(a.catalog))
		r.Get("/movies/{id}", handlers.Movie(a.catalog))
		r.Get("/movies/{id}/ratings", handlers.MovieRatings(a.store))
		r.Get("/movies/{id}/reviews", handlers.MovieReviews(a.store))

		r.Get("/users/{id}", handlers.GetUser(a.store))
		r.Get("/users/{id}/reviews", handlers.UserReviews(a.store))

		r.Group(func(r chi.Router) {
			r.Use(a.auth.RequireAuth)
			r.Get("/user", handlers.CurrentUser(a.store))
			r.Post("/movies/{id}/rate", handlers.RateMovie(a.store))
			r.Post("/movies/{id}/review", handlers.ReviewMovie(a.store))
			r.Post("/movies/{id}/watchlist", handlers.ToggleWatchlist(a.store))
			r.Get("/users/{id}/watchlist", handlers.Watchlist(a.store))
		})
	})
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.port,
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped")
	}
}
