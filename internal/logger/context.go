package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithUserID - id пользователя из сессии, попадает во все Ctx* записи запроса
func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// FromContext - логгер с request_id и user_id, если они есть в ctx
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		l = l.With("request_id", id)
	}
	if id, ok := ctx.Value(userIDKey).(uint); ok && id != 0 {
		l = l.With("user_id", id)
	}
	return l
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError - error-запись с полем "error"
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err}, args...)...)
}
