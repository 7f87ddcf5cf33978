package models

import "time"

type User struct {
	ID             uint       `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"column:password;size:255;not null" json:"-"`
	Role           UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Location       *string    `gorm:"size:255" json:"location"`
	Verified       bool       `gorm:"default:false" json:"verified"`
	ProfileImage   *string    `gorm:"type:text" json:"profile_image"`
	LastRoleSwitch *time.Time `json:"last_role_switch"`
	CreatedAt      time.Time  `json:"created_at"`
}
