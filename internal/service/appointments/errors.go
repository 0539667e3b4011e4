package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", domain.ErrNotFound)

	// ErrCannotCancel возвращается, когда запись уже в терминальном статусе
	ErrCannotCancel = fmt.Errorf("%w: appointment can no longer be cancelled", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
