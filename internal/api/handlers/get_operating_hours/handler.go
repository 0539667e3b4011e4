package get_operating_hours

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
)

const (
	msgInvalidLocation = "некорректный ID локации"
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

// Handle GET /api/v1/locations/{locationId}/operating-hours
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	result, err := h.service.ListOperatingHours(r.Context(), locationID)
	if err != nil {
		h.logger.Error("GET /locations/{id}/operating-hours - Failed to get operating hours: location_id=%s, error=%v",
			locationID, err)
		handlers.RespondDomainError(w, err, msgInvalidLocation)
		return
	}

	h.logger.Info("GET /locations/{id}/operating-hours - Operating hours retrieved: location_id=%s, days=%d",
		locationID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
