package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/usecase/capacity"
)

var (
	// ErrSlotNotAvailable возвращается, когда окно заняли раньше (нужно заново запросить слоты)
	ErrSlotNotAvailable = capacity.ErrSlotNotAvailable

	// ErrConcurrentBooking возвращается, когда транзакция не прошла после всех повторов
	ErrConcurrentBooking = fmt.Errorf("%w: slot no longer available, concurrent booking in progress", domain.ErrConflict)

	// ErrIdempotencyKeyReused возвращается, когда ключ уже использован для другого запроса
	ErrIdempotencyKeyReused = fmt.Errorf("%w: idempotency key was used with a different request", domain.ErrConflict)

	// ErrIdempotencyRequestInProgress возвращается, пока запрос с тем же ключом еще выполняется
	ErrIdempotencyRequestInProgress = fmt.Errorf("%w: request with this idempotency key is still in progress", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
