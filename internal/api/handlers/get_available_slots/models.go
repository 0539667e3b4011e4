package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FloatBookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(locationID, serviceID, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		LocationID: locationID,
		ServiceID:  serviceID,
		Date:       date,
	}

	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в список слотов
func FromUseCaseResponse(resp *getAvailableSlots.Response) []SlotResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:      s.Time.String(),
			Available: s.Available,
		})
	}
	return slots
}
