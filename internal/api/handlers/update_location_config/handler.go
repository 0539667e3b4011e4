package update_location_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/api/middleware"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/config/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle PUT /api/v1/locations/{locationId}/config
// Частичное обновление: поля, не переданные в теле, не меняются
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID := mux.Vars(r)["locationId"]

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /locations/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.StaffID = middleware.StaffIDFromContext(r.Context())

	result, err := h.service.Update(r.Context(), locationID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("PUT /locations/{id}/config - Validation failed: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("PUT /locations/{id}/config - Failed to update config: location_id=%s, error=%v", locationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /locations/{id}/config - Config updated: location_id=%s, staff_id=%s", locationID, req.StaffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
