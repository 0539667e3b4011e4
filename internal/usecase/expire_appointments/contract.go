package expire_appointments

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListExpiredPending(ctx context.Context, before time.Time, limit int) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
}

// OutboxRepository интерфейс outbox-таблицы событий
type OutboxRepository interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик отмененных записей
type Metrics interface {
	RecordExpired(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
