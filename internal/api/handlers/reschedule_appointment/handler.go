package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/FloatBookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgAppointmentNotFound = "запись не найдена"
	msgSlotNotAvailable    = "выбранное время недоступно"
	msgCannotReschedule    = "запись уже завершена или отменена"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable),
			errors.Is(err, rescheduleAppointment.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot not available: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotReschedule)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Validation failed: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%s, start=%s",
		appointmentID, result.Appointment.StartTime)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result.Appointment))
}
