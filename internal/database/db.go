// internal/database/db.go
package database

import (
	"fmt"
	"log"

	"github.com/1craig1/game-release-tracker/internal/config"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func InitDB(cfg *config.Config) {
	var err error
	switch cfg.DBDriver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open("file:"+cfg.DBPath), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ Game tracker DB connected & migrated")

	if err := seedRoles(db); err != nil {
		log.Printf("⚠️ Failed to seed roles: %v", err)
	} else {
		log.Println("✅ Roles seeded")
	}
}

// Migrate runs AutoMigrate for every entity (safe in dev; use migrations in prod).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Game{},
		&models.Genre{},
		&models.Platform{},
		&models.PreorderLink{},
		&models.WishlistItem{},
		&models.Notification{},
		&models.Session{},
		&models.RememberMeToken{},
		&models.SyncConfig{},
	)
}

func GetDB() *gorm.DB {
	return db
}
