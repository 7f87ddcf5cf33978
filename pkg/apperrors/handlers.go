package apperrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorEnvelope struct {
	Error *AppError `json:"error"`
}

// в development клиент видит сообщения внутренних ошибок
var exposeInternal bool

func SetDebug(debug bool) {
	exposeInternal = debug
}

// HandleError прерывает запрос и пишет {"error": {...}}.
// Любая ошибка не *AppError считается внутренней. Сам не логирует:
// причину пишет вызывающий код через internal/logger.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.Status >= http.StatusInternalServerError && !exposeInternal {
		appErr = appErr.WithDetails(nil)
		appErr.Message = "Internal server error"
	}

	c.AbortWithStatusJSON(appErr.Status, errorEnvelope{Error: appErr})
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
