package models

import (
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек расписания
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	SlotGranularityMinutes *int   `json:"slotGranularityMinutes,omitempty"`
	AdvanceBookingDays     *int   `json:"advanceBookingDays,omitempty"` // 0 = без ограничений
	StaffID                string `json:"-"`
}

// Response модели

// ConfigResponse ответ с настройками расписания локации
type ConfigResponse struct {
	LocationID             string     `json:"locationId"`
	SlotGranularityMinutes int        `json:"slotGranularityMinutes"`
	AdvanceBookingDays     int        `json:"advanceBookingDays"`
	IsDefault              bool       `json:"isDefault"` // настройки не сохранены, используются значения по умолчанию
	CreatedAt              *time.Time `json:"createdAt,omitempty"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.LocationSchedulingConfig, isDefault bool) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		LocationID:             c.LocationID,
		SlotGranularityMinutes: c.SlotGranularityMinutes,
		AdvanceBookingDays:     c.AdvanceBookingDays,
		IsDefault:              isDefault,
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
