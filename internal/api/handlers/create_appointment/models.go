package create_appointment

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/FloatBookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   string    `json:"clientId"`
	ServiceID  string    `json:"serviceId"`
	LocationID string    `json:"locationId"`
	StartTime  time.Time `json:"startTime"` // RFC3339
	EndTime    time.Time `json:"endTime"`   // RFC3339
	Notes      *string   `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(idempotencyKey string) *createAppointment.Request {
	return &createAppointment.Request{
		ClientID:       r.ClientID,
		ServiceID:      r.ServiceID,
		LocationID:     r.LocationID,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *models.AppointmentResponse {
	return models.FromDomainAppointment(resp.Appointment)
}
