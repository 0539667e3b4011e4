package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/infra/cache/idempotency"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
}

// OutboxRepository интерфейс outbox-таблицы событий
type OutboxRepository interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
}

// CapacityChecker повторная проверка занятости окна внутри транзакции
type CapacityChecker interface {
	Check(ctx context.Context, req capacity.Request) (*capacity.Result, error)
}

// IdempotencyStore хранилище ключей Idempotency-Key
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*idempotency.Record, error)
	Reserve(ctx context.Context, key, fingerprint string) (bool, error)
	Complete(ctx context.Context, key string, record idempotency.Record) error
	Release(ctx context.Context, key, fingerprint string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	RecordBookingCommit(outcome string)
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
