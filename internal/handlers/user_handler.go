package handlers

import (
	"fmt"
	"net/http"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/services/dto"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
	sessions    *session.Manager
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService, sessions *session.Manager) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
		sessions:    sessions,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.Authenticate())
	{
		user.PATCH("/profile", h.UpdateProfile)
		user.PUT("/password", h.ChangePassword)
		user.POST("/profile-image", h.UploadProfileImage)
		user.POST("/switch-role", h.SwitchRole)
	}
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(h.GetDB(c), current.ID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.rebind(c, user) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    dto.NewUserResponse(user),
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(h.GetDB(c), current.ID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "Password changed")
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.ProfileImageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UploadProfileImage(h.GetDB(c), current.ID, req.ProfileImage)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.rebind(c, user) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile image updated successfully",
		"user":    session.SnapshotOf(user),
	})
}

func (h *UserHandler) SwitchRole(c *gin.Context) {
	current, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.SwitchRole(h.GetDB(c), current.ID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !h.rebind(c, user) {
		return
	}

	logger.CtxInfo(c.Request.Context(), "Role switched", "new_role", user.Role)
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Role switched to %s", roleTitle(user.Role)),
		"newRole": user.Role,
		"user":    dto.NewUserResponse(user),
	})
}

// rebind кладет свежий снимок пользователя в текущую сессию
func (h *UserHandler) rebind(c *gin.Context, user *models.User) bool {
	if err := h.sessions.Rebind(c.Request.Context(), session.Current(c), session.SnapshotOf(user)); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to refresh session snapshot", err, "user_id", user.ID)
		apperrors.HandleError(c, apperrors.ErrSessionStore.WithError(err))
		return false
	}
	return true
}

func roleTitle(role models.UserRole) string {
	switch role {
	case models.UserRoleRequester:
		return "Requester"
	case models.UserRoleVolunteer:
		return "Volunteer"
	}
	return string(role)
}
