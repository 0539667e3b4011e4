package domain

import (
	"fmt"
	"strings"
	"time"
)

// LocationSchedulingConfig настройки расписания локации
// Если для локации нет записи, используются значения по умолчанию
type LocationSchedulingConfig struct {
	LocationID             string
	SlotGranularityMinutes int
	AdvanceBookingDays     int // 0 = без ограничения
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultSchedulingConfig конфигурация по умолчанию для локации
func DefaultSchedulingConfig(locationID string) *LocationSchedulingConfig {
	return &LocationSchedulingConfig{
		LocationID:             locationID,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		AdvanceBookingDays:     DefaultAdvanceBookingDays,
	}
}

// Validate проверяет границы значений
func (c *LocationSchedulingConfig) Validate() error {
	if strings.TrimSpace(c.LocationID) == "" {
		return fmt.Errorf("%w: locationId is required", ErrValidation)
	}
	if c.SlotGranularityMinutes < MinSlotGranularityMinutes || c.SlotGranularityMinutes > MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrValidation, MinSlotGranularityMinutes, MaxSlotGranularityMinutes)
	}
	if c.AdvanceBookingDays < 0 || c.AdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d", ErrValidation, MaxAdvanceBookingDays)
	}
	return nil
}

// HasAdvanceBookingLimit true, если задан лимит записи наперед
func (c *LocationSchedulingConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// LatestBookableDate последняя дата, на которую можно записаться, считая от now
func (c *LocationSchedulingConfig) LatestBookableDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, c.AdvanceBookingDays)
}
