package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/types"
)

// CalculateParams входные данные калькулятора доступности
type CalculateParams struct {
	Date               time.Time
	Hours              *domain.OperatingHours // nil, если для дня недели нет строки
	Capacity           int                    // R: количество доступных камер
	DurationMinutes    int
	GranularityMinutes int
	Appointments       []*domain.Appointment
	Blocks             []*domain.BlockedSlot
	Location           *time.Location
}

// CalculateSlots строит полный список слотов рабочего окна
// Слот [s, s+duration) доступен, если занятость в нем меньше Capacity
// Слоты не пропускаются: недоступный слот возвращается с Available = false
func CalculateSlots(p CalculateParams) ([]domain.Slot, error) {
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if p.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrInvalidInput)
	}

	if !p.Hours.IsOpen() || p.Capacity <= 0 {
		return []domain.Slot{}, nil
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	open, closeAt, err := p.Hours.Window(p.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: operating window: %v", ErrInternal, err)
	}

	duration := time.Duration(p.DurationMinutes) * time.Minute
	step := time.Duration(p.GranularityMinutes) * time.Minute

	slots := make([]domain.Slot, 0)
	for start := open; !start.Add(duration).After(closeAt); start = start.Add(step) {
		end := start.Add(duration)
		occupied := domain.CountOccupied(start, end, p.Capacity, p.Appointments, p.Blocks, loc)

		slots = append(slots, domain.Slot{
			Time:      types.NewTimeString(start.In(loc)),
			Available: occupied < p.Capacity,
		})
	}

	return slots, nil
}

func markUnavailable(slots []domain.Slot) []domain.Slot {
	for i := range slots {
		slots[i].Available = false
	}
	return slots
}
