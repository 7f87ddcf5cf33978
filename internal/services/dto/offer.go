package dto

type CreateOfferRequest struct {
	RequestID *uint `json:"request_id" validate:"required,gt=0"`
}

func (r *CreateOfferRequest) ValidationMessage(map[string]string) string {
	return "Request ID required"
}
