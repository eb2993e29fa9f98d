// Package db owns the SQLite database: opening, pragma tuning and schema
// migrations.
package db

import (
	"context"
	"fmt"

	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cinelog/cinelog/models"
)

// Open opens the SQLite database at path with gorm logging routed through
// the application logger.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         NewGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gdb, nil
}

// RunMigrations applies pragmas and migrates the schema. The watchlist's
// composite unique index is created by AutoMigrate from the model tags; it
// is what makes the toggle race-safe.
func RunMigrations(ctx context.Context, gdb *gorm.DB, logger *slog.Logger) error {
	if err := applyPragmas(ctx, gdb, logger); err != nil {
		return fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := gdb.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Rating{},
		&models.Review{},
		&models.WatchlistItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}

// applyPragmas enables the SQLite settings the service depends on. A failed
// pragma is logged and skipped; none of them are load-bearing for
// correctness except foreign_keys, which AutoMigrate would surface anyway.
func applyPragmas(ctx context.Context, gdb *gorm.DB, logger *slog.Logger) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := gdb.WithContext(ctx).Exec(pragma).Error; err != nil {
			logger.Warn("failed to execute pragma",
				slog.String("pragma", pragma),
				slog.Any("error", err))
		}
	}
	return nil
}
