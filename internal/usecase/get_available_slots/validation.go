package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.LocationID) == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return err
		}
	}

	return nil
}

func validateDuration(minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}
	if minutes > domain.MaxAppointmentMinutes {
		return fmt.Errorf("%w: durationMinutes must be at most %d", ErrInvalidInput, domain.MaxAppointmentMinutes)
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// isBeyondAdvanceLimit проверяет, что дата превышает ограничение advanceBookingDays
func isBeyondAdvanceLimit(date, now time.Time, cfg *domain.LocationSchedulingConfig) bool {
	if !cfg.HasAdvanceBookingLimit() {
		return false
	}
	latest := cfg.LatestBookableDate(now)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	latestOnly := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.After(latestOnly)
}
