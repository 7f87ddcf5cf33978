package routes

import (
	"net/http"

	"whatyaneed_backend/internal/handlers"
	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует HTTP API, /metrics и обработчик 404.
// client == nil - браузерный клиент не раздается.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	m *metrics.Metrics,
	client http.FileSystem,
) {
	api := ginRouter.Group("/api")
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.RequestHandler.RegisterRoutes(api)
		appHandlers.OfferHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	if m != nil {
		ginRouter.GET("/metrics", gin.WrapH(m.Handler()))
	}

	if client != nil {
		ginRouter.GET("/", func(c *gin.Context) {
			c.FileFromFS("/", client)
		})
		ginRouter.StaticFS("/static", client)
		logger.Info("Browser client is served on /")
	}

	ginRouter.NoRoute(notFound)
}

func notFound(c *gin.Context) {
	apperrors.HandleError(c, apperrors.NewNotFoundError("route", "Route not found").WithDetails(gin.H{
		"path": c.Request.URL.Path,
	}))
}
