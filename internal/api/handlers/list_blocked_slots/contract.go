package list_blocked_slots

import (
	"context"

	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
)

type CalendarService interface {
	ListBlockedSlots(ctx context.Context, req *models.ListBlockedSlotsRequest) (*models.BlockedSlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
