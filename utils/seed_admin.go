package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/treenow/treenowbackend/config"
	"github.com/treenow/treenowbackend/models"
	"github.com/treenow/treenowbackend/store"
)

// SeedAdminUser makes sure the configured admin account exists. There is no
// promotion endpoint, so this is the only way an admin is created besides a
// direct data edit.
func SeedAdminUser(ctx context.Context, users store.UserStore, cfg *config.Config) error {
	if !cfg.SeedAdmin() {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	created, err := users.EnsureAdmin(ctx, &models.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
	})
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if created {
		log.Println("Admin user seeded:", cfg.AdminEmail)
	} else {
		log.Println("Admin user already exists:", cfg.AdminEmail)
	}
	return nil
}
