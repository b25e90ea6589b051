package database

import (
	"fmt"
	"log/slog"

	"github.com/electrobid/electrobid-api/internal/config"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the default admin account if no admin exists yet.
func SeedAdmin(cfg *config.Config) error {
	var count int64
	if err := DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.AdminPassword == "" {
		slog.Warn("no admin user exists and ADMIN_PASSWORD is unset, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		ID:       uuid.New(),
		FullName: "System Admin",
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	slog.Info("admin user seeded", "email", admin.Email)
	return nil
}
