package list_appointments

import (
	"net/http"
	"time"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
)

// ToServiceRequest разбирает query параметры фильтра и пагинации
func ToServiceRequest(r *http.Request) (*models.ListAppointmentsRequest, error) {
	page, err := handlers.QueryInt(r, "page")
	if err != nil {
		return nil, err
	}
	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	startDate, err := handlers.QueryDate(r, "startDate", time.UTC)
	if err != nil {
		return nil, err
	}
	endDate, err := handlers.QueryDate(r, "endDate", time.UTC)
	if err != nil {
		return nil, err
	}

	return &models.ListAppointmentsRequest{
		ClientID:   handlers.QueryString(r, "clientId"),
		LocationID: handlers.QueryString(r, "locationId"),
		Status:     handlers.QueryString(r, "status"),
		StartDate:  startDate,
		EndDate:    endDate,
		Page:       page,
		Limit:      limit,
	}, nil
}
