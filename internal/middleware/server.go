package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/pkg/apperrors"
	"whatyaneed_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware пишет строку на каждый запрос. Состояние сессии
// логируется после обработки: логин/логаут меняют его по ходу запроса.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		sess := session.Current(c)
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.Int("size_bytes", c.Writer.Size()),
			slog.Bool("has_session", sess.ID != ""),
		}
		if sess.HasUser() {
			fields = append(fields, slog.String("user_email", sess.User.Email))
		}

		log := logger.FromContext(c.Request.Context())
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("HTTP Server Error", fields...)
		case status >= 400:
			log.Warn("HTTP Client Error", fields...)
		default:
			log.Info("HTTP Request", fields...)
		}
	}
}

// DBMiddleware кладет в gin.Context пул, привязанный к context запроса
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RecoveryMiddleware превращает панику в 500 с обычным конвертом ошибки
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.CtxError(c.Request.Context(), "Panic recovered",
			"panic", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, apperrors.InternalError(fmt.Errorf("panic: %v", recovered)))
	})
}
