package services

import (
	"time"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// UrgencyDecayAfter - через сколько high-запрос понижается до medium
const UrgencyDecayAfter = time.Hour

type RequestService interface {
	ListOpen(db *gorm.DB, query dto.RequestListQuery) ([]repositories.RequestWithRequester, error)
	Create(db *gorm.DB, requesterID uint, req *dto.CreateRequestRequest) (*models.Request, error)
	ListOwn(db *gorm.DB, requesterID uint) ([]repositories.RequestWithOfferCount, error)
	DecayUrgency(db *gorm.DB) (int64, error)
}

type RequestServiceImpl struct {
	requestRepo repositories.RequestRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewRequestService(requestRepo repositories.RequestRepository, m *metrics.Metrics) RequestService {
	return &RequestServiceImpl{
		requestRepo: requestRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// DecayUrgency понижает просроченные high-запросы. Ленивая операция:
// выполняется перед каждым чтением ленты, планировщика нет.
func (s *RequestServiceImpl) DecayUrgency(db *gorm.DB) (int64, error) {
	cutoff := s.now().UTC().Add(-UrgencyDecayAfter)
	decayed, err := s.requestRepo.DecayUrgency(db, cutoff)
	if err != nil {
		return 0, err
	}
	if decayed > 0 {
		logger.CtxInfo(db.Statement.Context, "Urgency decayed", "requests", decayed)
		s.metrics.RecordUrgencyDecay(decayed)
	}
	return decayed, nil
}

func (s *RequestServiceImpl) ListOpen(db *gorm.DB, query dto.RequestListQuery) ([]repositories.RequestWithRequester, error) {
	if _, err := s.DecayUrgency(db); err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to fetch requests")
	}

	requests, err := s.requestRepo.FindOpen(db, repositories.RequestFilter{
		Category: query.Category,
		Urgency:  query.Urgency,
		Location: query.Location,
		Search:   query.Search,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to fetch requests")
	}
	return requests, nil
}

func (s *RequestServiceImpl) Create(db *gorm.DB, requesterID uint, req *dto.CreateRequestRequest) (*models.Request, error) {
	urgency := models.UrgencyMedium
	if req.UrgencyLevel != nil && *req.UrgencyLevel != "" {
		urgency = *req.UrgencyLevel
	}
	if !urgency.IsValid() {
		return nil, apperrors.NewValidationError("Invalid urgency level", map[string]string{
			"urgency_level": "Must be one of: low, medium, high",
		})
	}

	request := &models.Request{
		RequesterID:  requesterID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     nilIfBlank(req.Category),
		UrgencyLevel: urgency,
		Location:     nilIfBlank(req.Location),
		Status:       models.RequestStatusOpen,
	}
	if urgency == models.UrgencyHigh {
		started := s.now().UTC()
		request.UrgentTimerStart = &started
	}

	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to create request")
	}

	s.metrics.RecordRequestCreated()
	return request, nil
}

func (s *RequestServiceImpl) ListOwn(db *gorm.DB, requesterID uint) ([]repositories.RequestWithOfferCount, error) {
	requests, err := s.requestRepo.FindByRequester(db, requesterID)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "Failed to fetch requests")
	}
	return requests, nil
}
