package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/internal/validator"
	"whatyaneed_backend/pkg/apperrors"
	"whatyaneed_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// validationMessenger - DTO сам выбирает сообщение для клиента по упавшим полям
type validationMessenger interface {
	ValidationMessage(fields map[string]string) string
}

// ============================================================================
// 2. Доступ к БД
// ============================================================================

// GetDB - *gorm.DB запроса из DBMiddleware. Без него роутер собран неправильно.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	if db, ok := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB); ok {
		return db
	}
	panic(fmt.Sprintf("handlers: %s in gin context is not *gorm.DB", contextkeys.DBContextKey))
}

// ============================================================================
// 3. Привязка и валидация
// ============================================================================

// BindAndValidateJSON - пустое тело равносильно {} и доходит до валидации
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}

	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var vErr *validator.ValidationError
	if !errors.As(err, &vErr) {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}

	logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
	if m, ok := obj.(validationMessenger); ok {
		apperrors.HandleError(c, apperrors.NewValidationError(m.ValidationMessage(vErr.Errors), vErr.Errors))
	} else {
		apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
	}
	return false
}

// ============================================================================
// 4. Ошибки сервисов
// ============================================================================

// HandleServiceError - 5xx пишем как ошибку с причиной, остальное как warning
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	path := c.Request.URL.Path

	appErr, ok := apperrors.AsAppError(err)
	switch {
	case !ok:
		logger.CtxWithError(ctx, "Unexpected service error", err, "path", path)
		appErr = apperrors.InternalError(err)
	case appErr.Status >= 500:
		logger.CtxWithError(ctx, "Service failure", err, "path", path)
	default:
		logger.CtxWarn(ctx, "Request rejected", "reason", appErr.Message, "details", appErr.Details, "path", path)
	}
	apperrors.HandleError(c, appErr)
}

// ============================================================================
// 5. Текущий пользователь
// ============================================================================

// CurrentUser - снимок пользователя из сессии. Без него пишет 401.
// На маршрутах за middleware.Authenticate ветка с 401 не срабатывает.
func (h *BaseHandler) CurrentUser(c *gin.Context) (*session.User, bool) {
	user := session.CurrentUser(c)
	if user == nil {
		apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
		return nil, false
	}
	return user, true
}

// ============================================================================
// 6. Парсинг параметров
// ============================================================================

func ParseParamUint(c *gin.Context, key string) (uint, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return 0, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil || value == 0 {
		return 0, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not a positive integer")
	}
	return uint(value), nil
}
