package service

import (
	"testing"
	"time"

	"github.com/1craig1/game-release-tracker/internal/database"
	"github.com/1craig1/game-release-tracker/pkg/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB returns a migrated sqlite in-memory DB with both roles seeded.
// The pool is pinned to one connection so every query sees the same memory
// database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, name := range []models.RoleType{models.RoleUser, models.RoleAdmin} {
		role := models.Role{Name: name}
		if err := db.Where(role).FirstOrCreate(&role).Error; err != nil {
			t.Fatalf("seed role %s: %v", name, err)
		}
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	var role models.Role
	if err := db.Where("name = ?", models.RoleUser).First(&role).Error; err != nil {
		t.Fatalf("load role: %v", err)
	}
	user := models.User{
		Username:            username,
		Email:               username + "@example.com",
		PasswordHash:        "x",
		EnableNotifications: true,
		Enabled:             true,
		RoleID:              role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

func createTestGame(t *testing.T, db *gorm.DB, title, slug string, status models.GameStatus) *models.Game {
	t.Helper()
	game := models.Game{
		Title:        title,
		RawgGameSlug: slug,
		ReleaseDate:  time.Now().UTC().AddDate(0, 0, 14),
		Status:       status,
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("create game %s: %v", title, err)
	}
	return &game
}
