package reschedule_appointment

import (
	"time"

	rescheduleAppointment "github.com/m04kA/FloatBookingService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime time.Time `json:"startTime"` // RFC3339
	EndTime   time.Time `json:"endTime"`   // RFC3339
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID string) *rescheduleAppointment.Request {
	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
	}
}
