package dto

import "whatyaneed_backend/internal/models"

type CreateRequestRequest struct {
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description" validate:"required"`
	Category     *string              `json:"category"`
	UrgencyLevel *models.UrgencyLevel `json:"urgency_level" validate:"omitempty,is-urgency"`
	Location     *string              `json:"location"`
}

func (r *CreateRequestRequest) ValidationMessage(fields map[string]string) string {
	if _, ok := fields["urgency_level"]; ok && r.Title != "" && r.Description != "" {
		return "Invalid urgency level"
	}
	return "Title and description required"
}

// RequestListQuery - фильтры GET /api/requests
type RequestListQuery struct {
	Category string `form:"category"`
	Urgency  string `form:"urgency"`
	Location string `form:"location"`
	Search   string `form:"search"`
}
