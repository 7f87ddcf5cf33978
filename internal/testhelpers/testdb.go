package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"whatyaneed_backend/database"
	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/config"
	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

var emailSeq atomic.Int64

// TestConfig - конфиг для тестов: sqlite в памяти, сессии в памяти, без почты
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"
	// одно соединение: у каждого соединения :memory: своя база
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetimeMinutes = 0
	cfg.Client.Serve = false
	return cfg
}

// NewTestDB открывает чистую sqlite-базу в памяти с примененными миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(TestConfig())
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить миграции: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db.WithContext(context.Background())
}

// UniqueEmail - email, не повторяющийся в рамках процесса
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, emailSeq.Add(1))
}

// CreateUser создает пользователя с захешированным паролем
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Не удалось хешировать пароль: %v", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать пользователя %s: %v", email, err)
	}
	return user
}

// CreateRequest создает открытый запрос напрямую в БД
func CreateRequest(t *testing.T, db *gorm.DB, requesterID uint, title string, urgency models.UrgencyLevel) *models.Request {
	t.Helper()

	request := &models.Request{
		RequesterID:  requesterID,
		Title:        title,
		Description:  title + " description",
		UrgencyLevel: urgency,
		Status:       models.RequestStatusOpen,
	}
	if urgency == models.UrgencyHigh {
		now := time.Now().UTC()
		request.UrgentTimerStart = &now
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("Не удалось создать запрос %q: %v", title, err)
	}
	return request
}
