package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init настраивает глобальный slog-логгер под окружение:
// development - text/debug, test - text/warn, остальное - json/info
func Init(env string) {
	slog.SetDefault(newLogger(env, os.Stdout))
	log = slog.Default()
}

func newLogger(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true}

	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(w, opts))
	case "test":
		opts.Level = slog.LevelWarn
		opts.AddSource = false
		return slog.New(slog.NewTextHandler(w, opts))
	default:
		return slog.New(slog.NewJSONHandler(w, opts))
	}
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal пишет ошибку и завершает процесс
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// WorkerLog - итог одного прохода фонового воркера
func WorkerLog(worker, operation string, err error, args ...any) {
	l := GetLogger().With("worker", worker, "operation", operation)
	if err != nil {
		l.Error("worker operation failed", append(args, "error", err)...)
		return
	}
	l.Debug("worker operation completed", args...)
}
