package repositories

import (
	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

// RecentNotificationsLimit - сколько уведомлений отдает лента
const RecentNotificationsLimit = 20

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindRecent(db *gorm.DB, recipientID uint, limit int) ([]models.Notification, error)
	CountUnread(db *gorm.DB, recipientID uint) (int64, error)

	// MarkAsRead помечает уведомление прочитанным, только если оно адресовано
	// recipientID. Чужое или несуществующее уведомление не меняется и не дает ошибки.
	MarkAsRead(db *gorm.DB, notificationID, recipientID uint) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindRecent(db *gorm.DB, recipientID uint, limit int) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	err := db.Where("recipient_id = ?", recipientID).
		Order("sent_date DESC").
		Order("notification_id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, recipientID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, notificationID, recipientID uint) error {
	return db.Model(&models.Notification{}).
		Where("notification_id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
}
