package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength - минимальная длина нового пароля
const MinPasswordLength = 6

var ErrPasswordTooShort = errors.New("password must be at least 6 characters long")

// HashPassword создает bcrypt хеш пароля (соль случайная для каждого хеша)
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword проверяет длину пароля
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// NormalizeEmail - email хранится и ищется в нижнем регистре
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
