package reschedule_appointment

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID string
	StartTime     time.Time
	EndTime       time.Time
}

// Response модель ответа с перенесенной записью
type Response struct {
	Appointment *domain.Appointment
}
