package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListActiveOverlapping(ctx context.Context, locationID string, from, to time.Time) ([]*domain.Appointment, error)
}

// BlockedSlotRepository интерфейс репозитория блокировок
type BlockedSlotRepository interface {
	ListForWindow(ctx context.Context, locationID string, from, to time.Time) ([]*domain.BlockedSlot, error)
}

// OperatingHoursRepository интерфейс хранилища часов работы
type OperatingHoursRepository interface {
	Get(ctx context.Context, locationID string, dayOfWeek int) (*domain.OperatingHours, error)
}

// SchedulingConfigRepository интерфейс репозитория настроек расписания
type SchedulingConfigRepository interface {
	Get(ctx context.Context, locationID string) (*domain.LocationSchedulingConfig, error)
}

// ResourceInventory источник количества доступных камер
type ResourceInventory interface {
	CountBookable(ctx context.Context, locationID string) (int, error)
}

// ServiceCatalog источник длительности услуги
type ServiceCatalog interface {
	GetServiceDuration(ctx context.Context, serviceID string) (int, error)
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
