package services

import (
	"context"
	"fmt"

	"whatyaneed_backend/internal/email"
	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Volunteer - кто откликается (из снимка сессии)
type Volunteer struct {
	ID   uint
	Name string
}

type OfferService interface {
	Create(db *gorm.DB, volunteer Volunteer, requestID uint) (*models.HelpOffer, error)
	ListOwn(db *gorm.DB, volunteerID uint) ([]repositories.OfferWithRequest, error)
}

type OfferServiceImpl struct {
	offerRepo        repositories.OfferRepository
	requestRepo      repositories.RequestRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	notifier         *email.Notifier
	metrics          *metrics.Metrics
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	requestRepo repositories.RequestRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	notifier *email.Notifier,
	m *metrics.Metrics,
) OfferService {
	return &OfferServiceImpl{
		offerRepo:        offerRepo,
		requestRepo:      requestRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		metrics:          m,
	}
}

// OfferMessage - текст уведомления владельцу запроса
func OfferMessage(volunteerName, requestTitle string) string {
	return fmt.Sprintf("%s offered to help with \"%s\"", volunteerName, requestTitle)
}

// Create создает pending-отклик и уведомление владельцу запроса.
// Две вставки не атомарны: если уведомление не записалось, отклик остается,
// а операция считается неуспешной.
func (s *OfferServiceImpl) Create(db *gorm.DB, volunteer Volunteer, requestID uint) (*models.HelpOffer, error) {
	request, err := s.requestRepo.FindOpenByID(db, requestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRequestNotFound) {
			return nil, apperrors.ErrRequestNotOpen
		}
		return nil, apperrors.DatabaseError(err, "Failed to create offer")
	}

	exists, err := s.offerRepo.Exists(db, volunteer.ID, requestID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to create offer")
	}
	if exists {
		return nil, apperrors.ErrAlreadyOffered
	}

	offer := &models.HelpOffer{
		VolunteerID: volunteer.ID,
		RequestID:   requestID,
		Status:      models.OfferStatusPending,
	}
	if err := s.offerRepo.Create(db, offer); err != nil {
		if apperrors.Is(err, repositories.ErrOfferAlreadyExists) {
			return nil, apperrors.ErrAlreadyOffered
		}
		return nil, apperrors.DatabaseError(err, "Failed to create offer")
	}

	message := OfferMessage(volunteer.Name, request.Title)
	notification := &models.Notification{
		RecipientID: request.RequesterID,
		Message:     message,
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to create offer")
	}

	s.metrics.RecordOfferCreated()
	s.mailRequester(db, request, volunteer, message)
	return offer, nil
}

// mailRequester отправляет копию уведомления на почту в фоне
func (s *OfferServiceImpl) mailRequester(db *gorm.DB, request *models.Request, volunteer Volunteer, message string) {
	if s.notifier == nil {
		return
	}

	ctx := context.WithoutCancel(db.Statement.Context)
	requester, err := s.userRepo.FindByID(db, request.RequesterID)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to load requester for offer email", err, "request_id", request.ID)
		return
	}

	go s.notifier.OfferReceived(ctx, requester.Email, email.OfferNotificationData{
		RequesterName: requester.Name,
		VolunteerName: volunteer.Name,
		RequestTitle:  request.Title,
		Message:       message,
	})
}

func (s *OfferServiceImpl) ListOwn(db *gorm.DB, volunteerID uint) ([]repositories.OfferWithRequest, error) {
	offers, err := s.offerRepo.FindByVolunteer(db, volunteerID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to fetch offers")
	}
	return offers, nil
}
