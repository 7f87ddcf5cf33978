package dto

import "whatyaneed_backend/internal/models"

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required"`
	Password string          `json:"password" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,is-creatable-role"`
	Location *string         `json:"location"`
}

// ValidationMessage - текст ошибки для клиента по упавшим полям
func (r *RegisterRequest) ValidationMessage(fields map[string]string) string {
	for _, f := range []string{"name", "email", "password"} {
		if _, ok := fields[f]; ok {
			return "All fields required"
		}
	}
	if r.Role == "" {
		return "All fields required"
	}
	return "Invalid role"
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) ValidationMessage(map[string]string) string {
	return "Email and password required"
}

// UserResponse - публичное представление пользователя (без хеша пароля)
type UserResponse struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	Location *string         `json:"location"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Location: u.Location,
	}
}
