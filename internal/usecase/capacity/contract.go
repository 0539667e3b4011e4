package capacity

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockLocation(ctx context.Context, locationID string) error
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
