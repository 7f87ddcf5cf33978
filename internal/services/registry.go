package services

import (
	"whatyaneed_backend/internal/email"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	RequestService      RequestService
	OfferService        OfferService
	NotificationService NotificationService
}

// NewServiceContainer собирает сервисы поверх репозиториев.
// notifier == nil - письма не отправляются.
func NewServiceContainer(notifier *email.Notifier, m *metrics.Metrics) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	requestRepo := repositories.NewRequestRepository()
	offerRepo := repositories.NewOfferRepository()
	notificationRepo := repositories.NewNotificationRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, m),
		UserService:         NewUserService(userRepo, m),
		RequestService:      NewRequestService(requestRepo, m),
		OfferService:        NewOfferService(offerRepo, requestRepo, notificationRepo, userRepo, notifier, m),
		NotificationService: NewNotificationService(notificationRepo),
	}
}
