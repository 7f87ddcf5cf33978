package database

import (
	"fmt"

	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate создает/обновляет таблицы users, requests, help_offers, notifications
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}
