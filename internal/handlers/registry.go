package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	HealthHandler       *HealthHandler
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	RequestHandler      *RequestHandler
	OfferHandler        *OfferHandler
	NotificationHandler *NotificationHandler
}
