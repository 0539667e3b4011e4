package models

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// Request модели

// ListAppointmentsRequest фильтр списка записей
type ListAppointmentsRequest struct {
	ClientID   *string
	LocationID *string
	Status     *string
	StartDate  *time.Time // начало периода (включительно)
	EndDate    *time.Time // конец периода (включительно, по дате)
	Page       int
	Limit      int
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	StaffID string `json:"-"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"clientId"`
	ServiceID       string    `json:"serviceId"`
	LocationID      *string   `json:"locationId,omitempty"`
	TankID          *string   `json:"tankId,omitempty"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Cancellable     bool      `json:"cancellable"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse страница записей
type AppointmentListResponse struct {
	Data       []AppointmentResponse `json:"data"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// CountResponse количество записей на дату
type CountResponse struct {
	LocationID *string `json:"locationId,omitempty"`
	Date       string  `json:"date"`
	Count      int     `json:"count"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:              a.ID,
		ClientID:        a.ClientID,
		ServiceID:       a.ServiceID,
		LocationID:      a.LocationID,
		TankID:          a.TankID,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		DurationMinutes: a.DurationMinutes(),
		Status:          string(a.Status),
		Cancellable:     a.IsCancellable(),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainPage конвертирует страницу domain моделей в DTO
func FromDomainPage(page domain.Page[*domain.Appointment]) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Data:       make([]AppointmentResponse, 0, len(page.Data)),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
	for _, a := range page.Data {
		resp.Data = append(resp.Data, *FromDomainAppointment(a))
	}
	return resp
}
