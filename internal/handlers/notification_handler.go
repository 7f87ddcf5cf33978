package handlers

import (
	"net/http"

	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/session"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		// без сессии отдает пустой список, а не 401
		notifications.GET("", h.List)
		notifications.GET("/unread-count", middleware.Authenticate(), h.UnreadCount)
		notifications.PATCH("/:id/read", middleware.Authenticate(), h.MarkAsRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := session.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []models.Notification{}})
		return
	}

	notifications, err := h.notificationService.ListRecent(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(h.GetDB(c), user.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead отвечает 200 и для чужих/несуществующих id
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	notificationID, err := ParseParamUint(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.notificationService.MarkAsRead(h.GetDB(c), user.ID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
