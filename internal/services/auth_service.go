package services

import (
	"strings"

	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*models.User, error)
	ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	metrics  *metrics.Metrics
}

func NewAuthService(userRepo repositories.UserRepository, m *metrics.Metrics) AuthService {
	return &AuthServiceImpl{
		userRepo: userRepo,
		metrics:  m,
	}
}

// Register - регистрация нового пользователя. В сессию не логинит.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	if !req.Role.IsCreatable() {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        auth.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         req.Role,
		Location:     nilIfBlank(req.Location),
		Verified:     false,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return user, nil
}

// Login проверяет email и пароль. Неизвестный email и неверный пароль
// неразличимы для клиента.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(db, auth.NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.RecordLogin(false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.metrics.RecordLogin(false)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.metrics.RecordLogin(true)
	return user, nil
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrCurrentPasswordMismatch
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// --- helpers ---

func handleUserError(err error) error {
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}

// nilIfBlank - пустая строка хранится как NULL
func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
