package count_appointments

import (
	"context"
	"time"

	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	CountByDate(ctx context.Context, locationID *string, date time.Time) (*models.CountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
