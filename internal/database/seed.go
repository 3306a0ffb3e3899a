// internal/database/seed.go
package database

import (
	"github.com/1craig1/game-release-tracker/pkg/models"

	"gorm.io/gorm"
)

// seedRoles makes sure the fixed role rows exist. FirstOrCreate keeps this
// idempotent across restarts.
func seedRoles(db *gorm.DB) error {
	for _, name := range []models.RoleType{models.RoleUser, models.RoleAdmin} {
		var role models.Role
		if err := db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
