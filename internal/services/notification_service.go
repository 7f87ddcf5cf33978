package services

import (
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	ListRecent(db *gorm.DB, recipientID uint) ([]models.Notification, error)
	UnreadCount(db *gorm.DB, recipientID uint) (int64, error)
	MarkAsRead(db *gorm.DB, recipientID, notificationID uint) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{notificationRepo: notificationRepo}
}

// ListRecent - последние уведомления получателя, новые первыми
func (s *NotificationServiceImpl) ListRecent(db *gorm.DB, recipientID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindRecent(db, recipientID, repositories.RecentNotificationsLimit)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to fetch notifications")
	}
	return notifications, nil
}

func (s *NotificationServiceImpl) UnreadCount(db *gorm.DB, recipientID uint) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, recipientID)
	if err != nil {
		return 0, apperrors.DatabaseError(err, "Failed to count notifications")
	}
	return count, nil
}

// MarkAsRead - чужое или несуществующее уведомление молча игнорируется
func (s *NotificationServiceImpl) MarkAsRead(db *gorm.DB, recipientID, notificationID uint) error {
	if err := s.notificationRepo.MarkAsRead(db, notificationID, recipientID); err != nil {
		return apperrors.DatabaseError(err, "Failed to update notification")
	}
	return nil
}
