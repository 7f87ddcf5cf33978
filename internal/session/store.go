package session

import (
	"context"
	"errors"
	"time"

	"whatyaneed_backend/internal/models"
)

// ErrNotFound - сессии нет или она истекла
var ErrNotFound = errors.New("session not found")

// User - снимок пользователя, привязанный к сессии при логине.
// Может устаревать относительно БД, пока его явно не перепривяжут.
type User struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	Location       *string         `json:"location"`
	Verified       bool            `json:"verified"`
	ProfileImage   *string         `json:"profile_image,omitempty"`
	LastRoleSwitch *time.Time      `json:"last_role_switch,omitempty"`
}

// SnapshotOf строит снимок из строки users
func SnapshotOf(u *models.User) User {
	return User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Location:       u.Location,
		Verified:       u.Verified,
		ProfileImage:   u.ProfileImage,
		LastRoleSwitch: u.LastRoleSwitch,
	}
}

// Store - хранилище сессий: id -> снимок пользователя с TTL
type Store interface {
	// Get возвращает ErrNotFound для неизвестной или истекшей сессии
	Get(ctx context.Context, id string) (*User, error)
	// Bind записывает снимок; возвращается только после подтверждения записи
	Bind(ctx context.Context, id string, user User, ttl time.Duration) error
	// Touch продлевает TTL существующей сессии
	Touch(ctx context.Context, id string, ttl time.Duration) error
	// Destroy удаляет сессию; отсутствие сессии не ошибка
	Destroy(ctx context.Context, id string) error
}
