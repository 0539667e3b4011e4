package get_operating_hours

import (
	"context"

	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

type CalendarService interface {
	ListOperatingHours(ctx context.Context, locationID string) (*models.OperatingHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
