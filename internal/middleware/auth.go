package middleware

import (
	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/pkg/apperrors"
	"whatyaneed_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware загружает сессию по cookie и кладет ее в gin.Context.
// Ошибка хранилища - 500, неизвестный id - анонимная сессия.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := manager.Load(c)
		if err != nil {
			logger.CtxWithError(c.Request.Context(), "Failed to load session", err)
			apperrors.HandleError(c, apperrors.ErrSessionStore.WithError(err))
			return
		}

		c.Set(string(contextkeys.SessionContextKey), sess)
		if sess.HasUser() {
			ctx := logger.WithUserID(c.Request.Context(), sess.User.ID)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// Authenticate пропускает только запросы с пользователем в сессии
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Current(c)
		if !sess.HasUser() {
			logger.CtxWarn(c.Request.Context(), "Unauthenticated access",
				"path", c.Request.URL.Path,
				"has_session", sess.CookieSent,
			)
			apperrors.HandleError(c, notAuthenticated(sess))
			return
		}
		c.Next()
	}
}

// Authorize проверяет роль из снимка сессии. Ставится после Authenticate.
func Authorize(allowed auth.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.CurrentUser(c)
		if user == nil {
			apperrors.HandleError(c, notAuthenticated(session.Current(c)))
			return
		}

		if !allowed.Contains(user.Role) {
			logger.CtxWarn(c.Request.Context(), "Insufficient permissions",
				"path", c.Request.URL.Path,
				"role", user.Role,
				"required", allowed.String(),
			)
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions.WithDetails(gin.H{
				"requiredRole": allowed.String(),
				"yourRole":     user.Role,
			}))
			return
		}
		c.Next()
	}
}

// hasSession: cookie пришел, но пользователя за ним нет (истек или неизвестен)
func notAuthenticated(sess *session.Session) *apperrors.AppError {
	return apperrors.ErrNotAuthenticated.WithDetails(gin.H{
		"hasSession": sess.CookieSent,
		"hasUser":    false,
	})
}
