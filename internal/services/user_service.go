package services

import (
	"math"
	"time"

	"whatyaneed_backend/internal/imageprocessor"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// RoleSwitchCooldown - минимальный интервал между переключениями роли
const RoleSwitchCooldown = 24 * time.Hour

type UserService interface {
	GetByID(db *gorm.DB, userID uint) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*models.User, error)
	UploadProfileImage(db *gorm.DB, userID uint, dataURL string) (*models.User, error)
	SwitchRole(db *gorm.DB, userID uint) (*models.User, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, m *metrics.Metrics) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *UserServiceImpl) GetByID(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(db, userID, req.Name, nilIfBlank(req.Location)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetByID(db, userID)
}

func (s *UserServiceImpl) UploadProfileImage(db *gorm.DB, userID uint, dataURL string) (*models.User, error) {
	if _, err := imageprocessor.ValidateDataURL(dataURL); err != nil {
		if apperrors.Is(err, imageprocessor.ErrTooLarge) {
			return nil, apperrors.ErrImageTooLarge
		}
		return nil, apperrors.ErrInvalidImageFormat
	}

	if err := s.userRepo.UpdateProfileImage(db, userID, dataURL); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.GetByID(db, userID)
}

// SwitchRole меняет requester <-> volunteer не чаще раза в сутки.
// Время последнего переключения берется из БД, а не из снимка сессии.
func (s *UserServiceImpl) SwitchRole(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.GetByID(db, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.UserRoleAdmin {
		return nil, apperrors.ErrAdminRoleSwitch
	}

	now := s.now().UTC()
	if user.LastRoleSwitch != nil {
		elapsed := now.Sub(*user.LastRoleSwitch)
		if elapsed < RoleSwitchCooldown {
			return nil, apperrors.ErrRoleSwitchCooldown.WithDetails(map[string]int{
				"hoursRemaining": hoursRemaining(RoleSwitchCooldown - elapsed),
			})
		}
	}

	newRole := user.Role.Opposite()
	if err := s.userRepo.UpdateRole(db, userID, newRole, now); err != nil {
		return nil, apperrors.InternalError(err)
	}

	user.Role = newRole
	user.LastRoleSwitch = &now
	s.metrics.RecordRoleSwitch(string(newRole))
	return user, nil
}

// hoursRemaining - оставшиеся часы с округлением вверх, минимум 1
func hoursRemaining(d time.Duration) int {
	h := int(math.Ceil(d.Hours()))
	if h < 1 {
		h = 1
	}
	return h
}
