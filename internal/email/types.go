package email

// Email - письмо для отправки
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// OfferNotificationData - данные шаблона "волонтер откликнулся"
type OfferNotificationData struct {
	RequesterName string
	VolunteerName string
	RequestTitle  string
	Message       string
}
