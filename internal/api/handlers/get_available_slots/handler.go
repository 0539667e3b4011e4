package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FloatBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgMissingDate      = "дата обязательна"
	msgInvalidParams    = "некорректный формат даты (YYYY-MM-DD) или длительности"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/availability
// Query params: serviceId (required), date (required, YYYY-MM-DD), durationMinutes (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	serviceID := strings.TrimSpace(r.URL.Query().Get("serviceId"))
	if serviceID == "" {
		h.logger.Warn("GET /locations/{id}/availability - Missing service ID: location_id=%s", locationID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		h.logger.Warn("GET /locations/{id}/availability - Missing date: location_id=%s", locationID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(locationID, serviceID, dateStr, strings.TrimSpace(r.URL.Query().Get("durationMinutes")))
	if err != nil {
		h.logger.Warn("GET /locations/{id}/availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /locations/{id}/availability - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /locations/{id}/availability - Validation failed: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /locations/{id}/availability - Failed to get slots: location_id=%s, service_id=%s, error=%v",
				locationID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/availability - Slots retrieved: location_id=%s, service_id=%s, date=%s, slots_count=%d",
		locationID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
