package create_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
	createAppointment "github.com/m04kA/FloatBookingService/internal/usecase/create_appointment"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotNotAvailable   = "выбранное время больше недоступно, запросите свободные слоты заново"
	msgKeyReused          = "Idempotency-Key уже использован для другого запроса"
	msgKeyInProgress      = "запрос с этим Idempotency-Key еще выполняется, повторите позже"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Header: Idempotency-Key (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(key))
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrIdempotencyKeyReused):
			h.logger.Warn("POST /appointments - Idempotency key reused: client_id=%s", req.ClientID)
			handlers.RespondConflict(w, msgKeyReused)

		case errors.Is(err, createAppointment.ErrIdempotencyRequestInProgress):
			h.logger.Warn("POST /appointments - Idempotency key in progress: client_id=%s", req.ClientID)
			handlers.RespondConflict(w, msgKeyInProgress)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%s, location_id=%s, start=%s",
				req.ClientID, req.LocationID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments - Validation failed: client_id=%s, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%s, location_id=%s, error=%v",
				req.ClientID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Replayed {
		w.Header().Set(ReplayedHeader, "true")
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, client_id=%s, replayed=%t",
		result.Appointment.ID, req.ClientID, result.Replayed)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
