package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
}

// OutboxRepository интерфейс outbox-таблицы событий
type OutboxRepository interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
}

// CapacityChecker повторная проверка занятости окна внутри транзакции
type CapacityChecker interface {
	Check(ctx context.Context, req capacity.Request) (*capacity.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
