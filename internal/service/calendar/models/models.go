package models

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/pkg/types"
)

// Request модели

// CreateBlockedSlotRequest запрос на создание блокировки
type CreateBlockedSlotRequest struct {
	LocationID string    `json:"locationId"`
	TankID     *string   `json:"tankId,omitempty"` // nil = блокируется вся локация
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Reason     string    `json:"reason"`
	Recurring  bool      `json:"recurring"`
	StaffID    string    `json:"-"`
}

// ListBlockedSlotsRequest фильтр и пагинация списка блокировок
type ListBlockedSlotsRequest struct {
	LocationID *string
	TankID     *string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// UpsertOperatingHoursRequest запрос на установку часов работы на день недели
type UpsertOperatingHoursRequest struct {
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
	Active    *bool            `json:"active,omitempty"` // по умолчанию true
	StaffID   string           `json:"-"`
}

// Response модели

// BlockedSlotResponse ответ с данными блокировки
type BlockedSlotResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"locationId"`
	TankID     *string   `json:"tankId,omitempty"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Reason     string    `json:"reason"`
	Recurring  bool      `json:"recurring"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlockedSlotListResponse страница блокировок
type BlockedSlotListResponse struct {
	Data       []BlockedSlotResponse `json:"data"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// OperatingHoursResponse часы работы на один день недели
type OperatingHoursResponse struct {
	LocationID string           `json:"locationId"`
	DayOfWeek  int              `json:"dayOfWeek"`
	OpenTime   types.TimeString `json:"openTime"`
	CloseTime  types.TimeString `json:"closeTime"`
	Active     bool             `json:"active"`
	UpdatedAt  *time.Time       `json:"updatedAt,omitempty"`
}

// OperatingHoursListResponse часы работы локации за неделю
type OperatingHoursListResponse struct {
	LocationID string                   `json:"locationId"`
	Days       []OperatingHoursResponse `json:"days"`
}

// Методы конвертации

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}
	return &BlockedSlotResponse{
		ID:         b.ID,
		LocationID: b.LocationID,
		TankID:     b.TankID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Reason:     b.Reason,
		Recurring:  b.Recurring,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlockedSlotPage конвертирует страницу блокировок
func FromDomainBlockedSlotPage(p domain.Page[*domain.BlockedSlot]) *BlockedSlotListResponse {
	data := make([]BlockedSlotResponse, 0, len(p.Data))
	for _, b := range p.Data {
		data = append(data, *FromDomainBlockedSlot(b))
	}
	return &BlockedSlotListResponse{
		Data:       data,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

// FromDomainOperatingHours конвертирует domain модель в DTO
func FromDomainOperatingHours(h *domain.OperatingHours) *OperatingHoursResponse {
	if h == nil {
		return nil
	}
	resp := &OperatingHoursResponse{
		LocationID: h.LocationID,
		DayOfWeek:  h.DayOfWeek,
		OpenTime:   h.OpenTime,
		CloseTime:  h.CloseTime,
		Active:     h.Active,
	}
	if !h.UpdatedAt.IsZero() {
		updatedAt := h.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
