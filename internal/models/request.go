package models

import "time"

// Request - запрос помощи, владелец - requester, который его создал
type Request struct {
	ID               uint          `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	RequesterID      uint          `gorm:"not null;index" json:"requester_id"`
	Title            string        `gorm:"size:200;not null" json:"title"`
	Description      string        `gorm:"type:text;not null" json:"description"`
	Category         *string       `gorm:"size:100;index" json:"category"`
	UrgencyLevel     UrgencyLevel  `gorm:"type:varchar(10);not null;default:'medium'" json:"urgency_level"`
	Location         *string       `gorm:"size:255" json:"location"`
	Status           RequestStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	PostedDate       time.Time     `gorm:"autoCreateTime" json:"posted_date"`
	UrgentTimerStart *time.Time    `json:"urgent_timer_start"`

	Requester *User `gorm:"foreignKey:RequesterID;references:ID" json:"-"`
}
