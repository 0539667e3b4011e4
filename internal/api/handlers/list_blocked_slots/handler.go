package list_blocked_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

type Handler struct {
	service  CalendarService
	location *time.Location
	logger   Logger
}

// NewHandler создает обработчик; даты фильтра трактуются в часовом поясе loc
func NewHandler(service CalendarService, loc *time.Location, logger Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service:  service,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/blocked-slots
// Query params: locationId, tankId, startDate, endDate, page, limit (все опциональны)
// Только для персонала (X-Staff-ID)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := h.toServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /blocked-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListBlockedSlots(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.logger.Warn("GET /blocked-slots - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("GET /blocked-slots - Failed to list blocked slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /blocked-slots - Blocked slots listed: count=%d, total=%d", len(result.Data), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) toServiceRequest(r *http.Request) (*models.ListBlockedSlotsRequest, error) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	startDate, err := handlers.QueryDate(r, "startDate", h.location)
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate", h.location)
	if err != nil {
		return nil, err
	}

	return &models.ListBlockedSlotsRequest{
		LocationID: handlers.QueryString(r, "locationId"),
		TankID:     handlers.QueryString(r, "tankId"),
		StartDate:  startDate,
		EndDate:    endDate,
		Page:       page,
		Limit:      limit,
	}, nil
}
