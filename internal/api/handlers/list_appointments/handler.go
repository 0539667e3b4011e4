package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: clientId, locationId, status, startDate, endDate, page, limit (все опциональны)
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /appointments - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Appointments listed: count=%d, total=%d, page=%d",
		len(result.Data), result.Total, result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
