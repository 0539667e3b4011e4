package delete_blocked_slot

import (
	"context"
)

type CalendarService interface {
	DeleteBlockedSlot(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
