package repositories

import (
	"errors"
	"time"

	"whatyaneed_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id uint) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	Create(db *gorm.DB, user *models.User) error

	UpdateProfile(db *gorm.DB, id uint, name string, location *string) error
	UpdatePassword(db *gorm.DB, id uint, hash string) error
	UpdateProfileImage(db *gorm.DB, id uint, dataURL string) error
	UpdateRole(db *gorm.DB, id uint, role models.UserRole, switchedAt time.Time) error

	CountByRole(db *gorm.DB, role models.UserRole) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create вставляет пользователя. Дубликат email (в том числе при гонке
// двух регистраций) возвращается как ErrUserAlreadyExists.
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	exists, err := r.ExistsByEmail(db, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}

	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, id uint, name string, location *string) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"name":     name,
		"location": location,
	})
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id uint, hash string) error {
	return r.updateColumns(db, id, map[string]interface{}{"password": hash})
}

func (r *UserRepositoryImpl) UpdateProfileImage(db *gorm.DB, id uint, dataURL string) error {
	return r.updateColumns(db, id, map[string]interface{}{"profile_image": dataURL})
}

func (r *UserRepositoryImpl) UpdateRole(db *gorm.DB, id uint, role models.UserRole, switchedAt time.Time) error {
	return r.updateColumns(db, id, map[string]interface{}{
		"role":             role,
		"last_role_switch": switchedAt,
	})
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) updateColumns(db *gorm.DB, id uint, values map[string]interface{}) error {
	// RowsAffected не проверяем: MySQL не считает строки без изменений
	return db.Model(&models.User{}).Where("user_id = ?", id).Updates(values).Error
}
