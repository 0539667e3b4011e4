package count_appointments

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/locations/{locationId}/appointments/count?date=YYYY-MM-DD
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		h.logger.Warn("GET /locations/{id}/appointments/count - Missing date: location_id=%s", locationID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /locations/{id}/appointments/count - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CountByDate(r.Context(), &locationID, date)
	if err != nil {
		h.logger.Error("GET /locations/{id}/appointments/count - Failed to count: location_id=%s, error=%v", locationID, err)
		handlers.RespondDomainError(w, err, msgInvalidDate)
		return
	}

	h.logger.Info("GET /locations/{id}/appointments/count - Counted: location_id=%s, date=%s, count=%d",
		locationID, result.Date, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
