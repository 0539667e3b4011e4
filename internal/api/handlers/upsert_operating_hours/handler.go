package upsert_operating_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/api/middleware"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается 0 (воскресенье) - 6 (суббота)"
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

// Handle PUT /api/v1/locations/{locationId}/operating-hours/{dayOfWeek}
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	locationID := vars["locationId"]

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /locations/{id}/operating-hours/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpsertOperatingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id}/operating-hours/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.StaffID = middleware.StaffIDFromContext(r.Context())

	result, err := h.service.UpsertOperatingHours(r.Context(), locationID, dayOfWeek, &req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("PUT /locations/{id}/operating-hours/{day} - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("PUT /locations/{id}/operating-hours/{day} - Failed to save: location_id=%s, day=%d, error=%v",
			locationID, dayOfWeek, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /locations/{id}/operating-hours/{day} - Saved: location_id=%s, day=%d, staff_id=%s",
		locationID, dayOfWeek, req.StaffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
