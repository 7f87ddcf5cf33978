package handlers

import (
	"net/http"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRoutes регистрирует маршруты /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.Authenticate(), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "User registered", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    dto.NewUserResponse(user),
	})
}

// Login привязывает пользователя к новой сессии. Ответ уходит только
// после того, как хранилище подтвердило запись.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	binding, err := h.sessions.Bind(c, session.Current(c), session.SnapshotOf(user))
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind session", err, "user_id", user.ID)
		apperrors.HandleError(c, apperrors.ErrSessionStore.WithError(err))
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), user.ID)
	c.Request = c.Request.WithContext(ctx)
	logger.CtxInfo(ctx, "User logged in", "expires_at", binding.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    binding.User,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c, session.Current(c)); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to destroy session", err)
		apperrors.HandleError(c, apperrors.New(apperrors.CodeInternalError, "session", "Logout failed", http.StatusInternalServerError).WithError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// Me отдает снимок из сессии как есть, без похода в БД
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
