package complete_expired

import (
	"context"
	"time"
)

// Worker периодически запускает проход завершения
type Worker struct {
	uc       *UseCase
	interval time.Duration
	logger   Logger
}

func NewWorker(uc *UseCase, interval time.Duration, logger Logger) *Worker {
	return &Worker{uc: uc, interval: interval, logger: logger}
}

// Run выполняет проход сразу и затем с интервалом, пока не отменен ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("CompleteExpired worker started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, err := w.uc.Execute(ctx); err != nil {
			w.logger.Error("CompleteExpired worker: pass failed: %v", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("CompleteExpired worker stopped")
			return
		case <-ticker.C:
		}
	}
}
