package calendar

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	Create(ctx context.Context, b *domain.BlockedSlot) (*domain.BlockedSlot, error)
	Delete(ctx context.Context, id string) error
	FindMany(ctx context.Context, filter domain.BlockedSlotFilter, page domain.Pagination) ([]*domain.BlockedSlot, int, error)
}

// OperatingHoursRepository интерфейс репозитория часов работы
type OperatingHoursRepository interface {
	ListByLocation(ctx context.Context, locationID string) ([]*domain.OperatingHours, error)
	Upsert(ctx context.Context, h *domain.OperatingHours) (*domain.OperatingHours, error)
}

// TimeProvider интерфейс для получения текущего времени
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
