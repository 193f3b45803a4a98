package database

import (
	"log"

	"github.com/ecotravel/ecotravel-api/internal/config"
	"github.com/ecotravel/ecotravel-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// sqlite keeps a separate in-memory database per connection, so the
	// pool must stay at a single connection.
	if cfg.DatabasePath == ":memory:" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to access database pool: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.BookingRecord{},
		&models.SavedTrip{},
		&models.SearchHistoryEntry{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
