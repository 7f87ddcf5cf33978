package dto

type UpdateProfileRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location *string `json:"location"`
}

func (r *UpdateProfileRequest) ValidationMessage(map[string]string) string {
	return "Name is required"
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (r *ChangePasswordRequest) ValidationMessage(map[string]string) string {
	return "Current and new password required"
}

type ProfileImageRequest struct {
	ProfileImage string `json:"profile_image" validate:"required"`
}

func (r *ProfileImageRequest) ValidationMessage(map[string]string) string {
	return "No image provided"
}
