package store

import (
	"context"
	"fmt"
	"time"

	"github.com/joystick-informer/backend/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// userRecord is the persisted form of a domain.User
type userRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:72;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRecord) TableName() string { return "users" }

// watchlistRecord is the persisted form of a domain.Watchlist. The id
// slices are stored as JSON text; sqlite has no array type and the
// lists are only ever read and written whole.
type watchlistRecord struct {
	UserID     string `gorm:"primaryKey;size:36"`
	GameIDs    string `gorm:"not null;default:'[]'"`
	RelatedIDs string `gorm:"not null;default:'[]'"`
	UpdatedAt  time.Time
}

func (watchlistRecord) TableName() string { return "watchlists" }

// Open connects to the sqlite database, applies pool settings, verifies
// the connection and migrates the schema
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Suppress GORM logging; the application logs at the service level
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// sqlite serializes writes; a small pool avoids lock contention
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &watchlistRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
