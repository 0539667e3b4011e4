package domain

// Форматы даты и времени
const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)

// Значения конфигурации по умолчанию
const (
	DefaultSlotGranularityMinutes = 30
	DefaultAdvanceBookingDays     = 0 // 0 = без ограничения
)

// Ограничения бизнес-валидации
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MaxAdvanceBookingDays     = 365
	MaxAppointmentMinutes     = 24 * 60
	MaxReasonLength           = 500
	MaxNotesLength            = 2000
)
