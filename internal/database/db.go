package database

import (
	"fmt"
	"log/slog"

	"github.com/justsurfingit/job-agent/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the journal database and migrates its tables.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := Open(postgres.Open(dsn))
	if err != nil {
		return nil, err
	}

	slog.Info("running journal migrations")
	if err := db.AutoMigrate(&models.RunEvent{}); err != nil {
		return nil, fmt.Errorf("migrate run_events: %w", err)
	}
	return db, nil
}

// Open wraps gorm.Open with the journal's settings: no default transaction around inserts, silent gorm logger.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect journal database: %w", err)
	}
	slog.Info("journal database connection established")
	return db, nil
}
