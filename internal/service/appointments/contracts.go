package appointments

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindMany(ctx context.Context, filter domain.AppointmentFilter, page domain.Pagination) ([]*domain.Appointment, int, error)
	Update(ctx context.Context, a *domain.Appointment) error
	CountByDate(ctx context.Context, locationID *string, from, to time.Time) (int, error)
}

// OutboxRepository интерфейс outbox-таблицы событий
type OutboxRepository interface {
	Insert(ctx context.Context, e *domain.OutboxEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
