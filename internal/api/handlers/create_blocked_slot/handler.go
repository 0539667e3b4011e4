package create_blocked_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/api/middleware"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/blocked-slots
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockedSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.StaffID = middleware.StaffIDFromContext(r.Context())

	result, err := h.service.CreateBlockedSlot(r.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("POST /blocked-slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("POST /blocked-slots - Failed to create blocked slot: location_id=%s, error=%v", req.LocationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /blocked-slots - Blocked slot created: id=%s, location_id=%s, staff_id=%s",
		result.ID, result.LocationID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
