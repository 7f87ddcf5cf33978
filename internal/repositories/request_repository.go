package repositories

import (
	"errors"
	"strings"
	"time"

	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("request not found")

// RequestFilter - фильтры ленты открытых запросов. Пустое поле не фильтрует.
type RequestFilter struct {
	Category string
	Urgency  string
	Location string // подстрока
	Search   string // подстрока в title или description
}

// RequestWithRequester - открытый запрос с именем и email владельца
type RequestWithRequester struct {
	models.Request
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
}

// RequestWithOfferCount - запрос владельца с числом pending-откликов
type RequestWithOfferCount struct {
	models.Request
	PendingOffers int64 `json:"pending_offers"`
}

type RequestRepository interface {
	Create(db *gorm.DB, request *models.Request) error
	FindOpenByID(db *gorm.DB, id uint) (*models.Request, error)
	FindOpen(db *gorm.DB, filter RequestFilter) ([]RequestWithRequester, error)
	FindByRequester(db *gorm.DB, requesterID uint) ([]RequestWithOfferCount, error)

	// DecayUrgency переводит high -> medium для запросов, чей таймер
	// запущен не позже cutoff. Возвращает число измененных строк.
	DecayUrgency(db *gorm.DB, cutoff time.Time) (int64, error)
}

type RequestRepositoryImpl struct{}

func NewRequestRepository() RequestRepository {
	return &RequestRepositoryImpl{}
}

func (r *RequestRepositoryImpl) Create(db *gorm.DB, request *models.Request) error {
	return db.Create(request).Error
}

func (r *RequestRepositoryImpl) FindOpenByID(db *gorm.DB, id uint) (*models.Request, error) {
	var request models.Request
	err := db.Where("request_id = ? AND status = ?", id, models.RequestStatusOpen).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *RequestRepositoryImpl) FindOpen(db *gorm.DB, filter RequestFilter) ([]RequestWithRequester, error) {
	query := db.Table("requests AS r").
		Select("r.*, u.name AS requester_name, u.email AS requester_email").
		Joins("JOIN users u ON u.user_id = r.requester_id").
		Where("r.status = ?", models.RequestStatusOpen)

	if filter.Category != "" {
		query = query.Where("r.category = ?", filter.Category)
	}
	if filter.Urgency != "" {
		query = query.Where("r.urgency_level = ?", filter.Urgency)
	}
	// без учета регистра на любом драйвере (LIKE в Postgres регистрозависим)
	if filter.Location != "" {
		query = query.Where("LOWER(r.location) LIKE ?", containsPattern(filter.Location))
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where("(LOWER(r.title) LIKE ? OR LOWER(r.description) LIKE ?)", pattern, pattern)
	}

	rows := make([]RequestWithRequester, 0)
	err := query.Order("r.posted_date DESC").Order("r.request_id DESC").Scan(&rows).Error
	return rows, err
}

func (r *RequestRepositoryImpl) FindByRequester(db *gorm.DB, requesterID uint) ([]RequestWithOfferCount, error) {
	rows := make([]RequestWithOfferCount, 0)
	err := db.Table("requests AS r").
		Select(`r.*, (SELECT COUNT(*) FROM help_offers ho
			WHERE ho.request_id = r.request_id AND ho.status = ?) AS pending_offers`, models.OfferStatusPending).
		Where("r.requester_id = ?", requesterID).
		Order("r.posted_date DESC").
		Order("r.request_id DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *RequestRepositoryImpl) DecayUrgency(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&models.Request{}).
		Where("urgency_level = ? AND urgent_timer_start IS NOT NULL AND urgent_timer_start <= ?",
			models.UrgencyHigh, cutoff).
		Update("urgency_level", models.UrgencyMedium)
	return result.RowsAffected, result.Error
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
