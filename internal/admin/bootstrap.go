// Package admin owns deployment-time setup: explicit, idempotent steps
// invoked once from main rather than hidden in package init.
package admin

import (
	"errors"
	"log"

	"forecast-backend/internal/config"
	"forecast-backend/internal/database"
	"forecast-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the bootstrap admin user from config if no user with
// that email exists yet. Safe to run on every startup.
func EnsureAdmin(cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := database.DB.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:         "admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("bootstrap admin %s created", cfg.AdminEmail)
	return nil
}
