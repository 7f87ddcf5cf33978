package models

import "time"

type Notification struct {
	ID          uint      `gorm:"column:notification_id;primaryKey;autoIncrement" json:"notification_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	SentDate    time.Time `gorm:"autoCreateTime" json:"sent_date"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
}
