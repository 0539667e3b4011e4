package create_appointment

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/metrics"
)

const maxIdempotencyKeyLength = 255

// validateRequest валидирует то, что не проверяет domain.NewAppointment
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.LocationID) == "" {
		return fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	if len(req.IdempotencyKey) > maxIdempotencyKeyLength {
		return fmt.Errorf("%w: Idempotency-Key must be at most %d characters", ErrInvalidInput, maxIdempotencyKeyLength)
	}

	return nil
}

// fingerprint отпечаток запроса для проверки повторного использования ключа
func fingerprint(req *Request) string {
	h := sha256.New()
	for _, part := range []string{
		req.ClientID,
		req.ServiceID,
		req.LocationID,
		req.StartTime.UTC().Format(time.RFC3339),
		req.EndTime.UTC().Format(time.RFC3339),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// outcomeOf исход коммита для метрик
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.BookingOutcomeCreated
	case errors.Is(err, domain.ErrConflict):
		return metrics.BookingOutcomeConflict
	case errors.Is(err, domain.ErrValidation):
		return metrics.BookingOutcomeInvalid
	default:
		return metrics.BookingOutcomeError
	}
}
