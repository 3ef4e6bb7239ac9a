package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/auth"
	"github.com/octobees/faculty-hub/api/internal/config"
	"github.com/octobees/faculty-hub/api/internal/database"
	"github.com/octobees/faculty-hub/api/internal/handler"
	"github.com/octobees/faculty-hub/api/internal/logger"
	middlewarepkg "github.com/octobees/faculty-hub/api/internal/middleware"
	"github.com/octobees/faculty-hub/api/internal/refresh"
	"github.com/octobees/faculty-hub/api/internal/repository"
	"github.com/octobees/faculty-hub/api/internal/router"
	"github.com/octobees/faculty-hub/api/internal/scraper"
	"github.com/octobees/faculty-hub/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Config{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL, database.WithMaxConns(cfg.DatabaseMaxConns))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	credentials, err := auth.NewCredentials(cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load admin credentials")
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	facultyRepo := repository.NewPGXFacultyRepository(pool)

	pageClient := scraper.NewPageClient(cfg.Fetch.Timeout, cfg.Fetch.RateLimit)
	fetcher := scraper.NewProfileFetcher(pageClient, log.With().Str("component", "scraper").Logger())

	refresher := refresh.NewRefresher(fetcher, facultyRepo, log.With().Str("component", "refresher").Logger())
	dispatcher := refresh.NewDispatcher(cfg.Refresh.Workers, cfg.Refresh.QueueSize, refresher, log.With().Str("component", "dispatcher").Logger())

	authService := service.NewAuthService(credentials, jwtManager)
	facultyService := service.NewFacultyService(facultyRepo, dispatcher, cfg.Refresh.StaleAfter, log)

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService, log),
		Faculty: handler.NewFacultyHandler(facultyService, log),
		Scrape:  handler.NewScrapeHandler(fetcher),
	}

	e := newServer(log)
	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("refresh workers did not drain in time")
	}
}

// newServer builds the echo instance with the middleware shared by every route.
func newServer(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())
	return e
}
