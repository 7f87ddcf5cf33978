package models

import "time"

// HelpOffer - отклик волонтера на запрос. Пара (volunteer, request) уникальна.
type HelpOffer struct {
	ID          uint        `gorm:"column:offer_id;primaryKey;autoIncrement" json:"offer_id"`
	VolunteerID uint        `gorm:"not null;uniqueIndex:idx_offer_volunteer_request" json:"volunteer_id"`
	RequestID   uint        `gorm:"not null;uniqueIndex:idx_offer_volunteer_request;index" json:"request_id"`
	Status      OfferStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	OfferDate   time.Time   `gorm:"autoCreateTime" json:"offer_date"`

	Volunteer *User    `gorm:"foreignKey:VolunteerID;references:ID" json:"-"`
	Request   *Request `gorm:"foreignKey:RequestID;references:ID" json:"-"`
}
