package get_available_slots

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	LocationID      string    // ID локации
	ServiceID       string    // ID услуги
	Date            time.Time // Дата (используются только год, месяц и день)
	DurationMinutes *int      // Длительность сеанса; если не задана, берется из каталога
}

// Response модель ответа со списком слотов
type Response struct {
	LocationID         string
	ServiceID          string
	Date               time.Time
	DurationMinutes    int
	GranularityMinutes int
	Slots              []domain.Slot // Все слоты рабочего окна в хронологическом порядке
}
