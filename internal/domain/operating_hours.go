package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FloatBookingService/pkg/types"
)

// OperatingHours часы работы локации в конкретный день недели
// DayOfWeek: 0 = воскресенье ... 6 = суббота (как time.Weekday)
type OperatingHours struct {
	LocationID string
	DayOfWeek  int
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	Active     bool
	UpdatedAt  time.Time
}

// NewOperatingHours валидирует и создает запись часов работы
func NewOperatingHours(locationID string, dayOfWeek int, openTime, closeTime types.TimeString, active bool) (*OperatingHours, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, fmt.Errorf("%w: locationId is required", ErrValidation)
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrValidation)
	}
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: openTime: %v", ErrValidation, err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: closeTime: %v", ErrValidation, err)
	}
	if active && !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrValidation)
	}

	return &OperatingHours{
		LocationID: locationID,
		DayOfWeek:  dayOfWeek,
		OpenTime:   openTime,
		CloseTime:  closeTime,
		Active:     active,
	}, nil
}

// DayOfWeekOf возвращает день недели даты в нумерации OperatingHours
func DayOfWeekOf(date time.Time) int {
	return int(date.Weekday())
}

// IsOpen true, если локация принимает записи в этот день недели
func (h *OperatingHours) IsOpen() bool {
	return h != nil && h.Active
}

// Window возвращает моменты открытия и закрытия для даты date в часовом поясе loc
func (h *OperatingHours) Window(date time.Time, loc *time.Location) (time.Time, time.Time, error) {
	open, err := h.OpenTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	closeAt, err := h.CloseTime.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return open, closeAt, nil
}

// Contains проверяет, что окно [start, end) целиком лежит в часах работы даты start
func (h *OperatingHours) Contains(start, end time.Time, loc *time.Location) (bool, error) {
	open, closeAt, err := h.Window(start.In(loc), loc)
	if err != nil {
		return false, err
	}
	return !start.Before(open) && !end.After(closeAt), nil
}
