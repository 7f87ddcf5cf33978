package handlers

import (
	"net/http"
	"time"

	"whatyaneed_backend/internal/session"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/test-session", h.TestSession)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// TestSession - диагностика cookie/сессии для отладки клиента
func (h *HealthHandler) TestSession(c *gin.Context) {
	sess := session.Current(c)
	c.JSON(http.StatusOK, gin.H{
		"message":    "Session test",
		"hasSession": sess.ID != "",
		"sessionId":  sess.ID,
		"hasUser":    sess.HasUser(),
		"user":       sess.User,
	})
}
