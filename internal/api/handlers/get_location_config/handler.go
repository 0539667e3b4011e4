package get_location_config

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
)

const (
	msgInvalidLocation = "некорректный ID локации"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/config
// Если настройки не сохранены, возвращаются значения по умолчанию (isDefault=true)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	result, err := h.service.Get(r.Context(), locationID)
	if err != nil {
		h.logger.Error("GET /locations/{id}/config - Failed to get config: location_id=%s, error=%v", locationID, err)
		handlers.RespondDomainError(w, err, msgInvalidLocation)
		return
	}

	h.logger.Info("GET /locations/{id}/config - Config retrieved: location_id=%s, default=%t", locationID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
