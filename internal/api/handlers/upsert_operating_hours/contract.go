package upsert_operating_hours

import (
	"context"

	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

type CalendarService interface {
	UpsertOperatingHours(ctx context.Context, locationID string, dayOfWeek int, req *models.UpsertOperatingHoursRequest) (*models.OperatingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
