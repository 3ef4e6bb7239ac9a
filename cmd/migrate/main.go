// Command migrate renames the legacy faculty.title column to designation.
// It is safe to run repeatedly.
package main

import (
	"context"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/octobees/faculty-hub/api/internal/database"
	"github.com/octobees/faculty-hub/api/internal/logger"
)

func main() {
	log := logger.New(logger.Config{Level: os.Getenv("LOG_LEVEL"), Pretty: true})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error().Msg("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, dsn)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect database")
		os.Exit(1)
	}
	defer pool.Close()

	status, err := database.MigrateLegacyDesignation(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("migration failed, changes rolled back")
		pool.Close()
		os.Exit(1)
	}

	switch status {
	case database.LegacyNoTable:
		log.Info().Msg("faculty table does not exist yet, nothing to migrate")
	case database.LegacyAlreadyMigrated:
		log.Info().Msg("designation column already present, nothing to do")
	case database.LegacyMigrated:
		log.Info().Msg("renamed faculty.title to designation")
	}
}
