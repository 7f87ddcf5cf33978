package workers

import (
	"context"
	"time"

	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/metrics"
)

// Sweeper - хранилище сессий, которое нужно периодически чистить
type Sweeper interface {
	Sweep() int
}

type SessionWorker struct {
	store    Sweeper
	interval time.Duration
	metrics  *metrics.Metrics
}

func NewSessionWorker(store Sweeper, interval time.Duration, m *metrics.Metrics) *SessionWorker {
	return &SessionWorker{store: store, interval: interval, metrics: m}
}

// Start запускает очистку истекших сессий до отмены ctx
func (w *SessionWorker) Start(ctx context.Context) {
	go w.sweepExpiredSessions(ctx)
}

func (w *SessionWorker) sweepExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce - один проход очистки
func (w *SessionWorker) RunOnce() int {
	removed := w.store.Sweep()
	if removed > 0 {
		logger.WorkerLog("session", "sweep", nil, "removed", removed)
		w.metrics.RecordSessionsSwept(removed)
	}
	return removed
}
