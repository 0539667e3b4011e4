package delete_blocked_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/service/calendar"
)

const (
	msgBlockedSlotNotFound = "блокировка не найдена"
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

// Handle DELETE /api/v1/blocked-slots/{blockedSlotId}
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockedSlotID := mux.Vars(r)["blockedSlotId"]

	if err := h.service.DeleteBlockedSlot(r.Context(), blockedSlotID); err != nil {
		if errors.Is(err, calendar.ErrBlockedSlotNotFound) {
			h.logger.Warn("DELETE /blocked-slots/{id} - Blocked slot not found: id=%s", blockedSlotID)
			handlers.RespondNotFound(w, msgBlockedSlotNotFound)
			return
		}

		h.logger.Error("DELETE /blocked-slots/{id} - Failed to delete blocked slot: id=%s, error=%v", blockedSlotID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /blocked-slots/{id} - Blocked slot deleted: id=%s", blockedSlotID)
	handlers.RespondNoContent(w)
}
