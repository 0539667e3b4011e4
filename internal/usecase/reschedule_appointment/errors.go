package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointment not found", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда новое окно уже занято
	ErrSlotNotAvailable = capacity.ErrSlotNotAvailable

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла после всех повторов
	ErrConcurrentUpdate = fmt.Errorf("%w: appointment was changed concurrently", domain.ErrConflict)

	// ErrNoLocation возвращается для записей без локации: их окно нельзя проверить
	ErrNoLocation = fmt.Errorf("%w: appointment has no location", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
