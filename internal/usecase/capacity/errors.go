package capacity

import (
	"errors"
	"fmt"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

var (
	// ErrLocationClosed возвращается, когда локация не работает в этот день
	ErrLocationClosed = fmt.Errorf("%w: location is closed on this date", domain.ErrValidation)

	// ErrOutsideOperatingHours возвращается, когда окно выходит за часы работы
	ErrOutsideOperatingHours = fmt.Errorf("%w: window is outside operating hours", domain.ErrValidation)

	// ErrStartInPast возвращается при попытке записаться на прошедшее время
	ErrStartInPast = fmt.Errorf("%w: startTime is in the past", domain.ErrValidation)

	// ErrTooFarInAdvance возвращается, когда дата превышает ограничение advanceBookingDays
	ErrTooFarInAdvance = fmt.Errorf("%w: date is too far in the future", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда все камеры в окне заняты
	ErrSlotNotAvailable = fmt.Errorf("%w: slot no longer available", domain.ErrConflict)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("capacity: internal error")
)
