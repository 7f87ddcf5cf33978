package repositories

import (
	"errors"

	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOfferAlreadyExists = errors.New("offer already exists")

// OfferWithRequest - отклик волонтера с данными запроса и его владельца
type OfferWithRequest struct {
	models.HelpOffer
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	Location       *string              `json:"location"`
	RequestStatus  models.RequestStatus `json:"request_status"`
	RequesterName  string               `json:"requester_name"`
	RequesterEmail string               `json:"requester_email"`
}

type OfferRepository interface {
	Exists(db *gorm.DB, volunteerID, requestID uint) (bool, error)
	Create(db *gorm.DB, offer *models.HelpOffer) error
	FindByVolunteer(db *gorm.DB, volunteerID uint) ([]OfferWithRequest, error)
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

// Exists - есть ли у пары (volunteer, request) отклик в любом статусе
func (r *OfferRepositoryImpl) Exists(db *gorm.DB, volunteerID, requestID uint) (bool, error) {
	var count int64
	err := db.Model(&models.HelpOffer{}).
		Where("volunteer_id = ? AND request_id = ?", volunteerID, requestID).
		Count(&count).Error
	return count > 0, err
}

// Create вставляет отклик; уникальный индекс ловит гонку двух одинаковых откликов
func (r *OfferRepositoryImpl) Create(db *gorm.DB, offer *models.HelpOffer) error {
	if err := db.Create(offer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrOfferAlreadyExists
		}
		return err
	}
	return nil
}

func (r *OfferRepositoryImpl) FindByVolunteer(db *gorm.DB, volunteerID uint) ([]OfferWithRequest, error) {
	rows := make([]OfferWithRequest, 0)
	err := db.Table("help_offers AS ho").
		Select(`ho.*, r.title, r.description, r.location, r.status AS request_status,
			u.name AS requester_name, u.email AS requester_email`).
		Joins("JOIN requests r ON r.request_id = ho.request_id").
		Joins("JOIN users u ON u.user_id = r.requester_id").
		Where("ho.volunteer_id = ?", volunteerID).
		Order("ho.offer_date DESC").
		Order("ho.offer_id DESC").
		Scan(&rows).Error
	return rows, err
}
