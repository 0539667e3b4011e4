package expiry

import (
	"context"
	"time"
)

// DefaultInterval период запуска очистки просроченных записей
const DefaultInterval = time.Minute

// Expirer отменяет одну пачку просроченных записей
type Expirer interface {
	Execute(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker периодически запускает отмену просроченных pending-записей
type Worker struct {
	expirer   Expirer
	interval  time.Duration
	batchSize int
	logger    Logger
}

// NewWorker создает фонового исполнителя
// batchSize должен совпадать с размером пачки use case: полная пачка означает, что остались еще записи
func NewWorker(expirer Expirer, interval time.Duration, batchSize int, logger Logger) *Worker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Worker{
		expirer:   expirer,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run запускает очистку сразу и далее по таймеру до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Run: expiry worker started (interval=%s)", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.tick(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("Run: expiry worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// tick отменяет пачки, пока они приходят полными
func (w *Worker) tick(ctx context.Context) {
	total := 0
	for ctx.Err() == nil {
		n, err := w.expirer.Execute(ctx)
		if err != nil {
			w.logger.Error("Run: expiry failed: %v", err)
			break
		}
		total += n
		if w.batchSize <= 0 || n < w.batchSize {
			break
		}
	}
	if total > 0 {
		w.logger.Info("Run: cancelled %d expired appointments", total)
	}
}
