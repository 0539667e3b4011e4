package create_appointment

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       string
	ServiceID      string
	LocationID     string
	StartTime      time.Time
	EndTime        time.Time
	Notes          *string
	IdempotencyKey string // необязательный заголовок Idempotency-Key
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Replayed    bool // запись возвращена по ранее использованному Idempotency-Key
}
