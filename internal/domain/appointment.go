package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus статус записи на сеанс
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// ActiveStatuses статусы, в которых запись занимает ресурс
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// appointmentTransitions допустимые переходы: исходный статус -> целевые
// Терминальные статусы не имеют исходящих переходов
var appointmentTransitions = map[AppointmentStatus]map[AppointmentStatus]struct{}{
	StatusPending: {
		StatusConfirmed: {},
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	},
	StatusConfirmed: {
		StatusCompleted: {},
		StatusCancelled: {},
		StatusNoShow:    {},
	},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// ParseAppointmentStatus проверяет строку статуса
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.TrimSpace(s))
	if _, ok := appointmentTransitions[status]; !ok {
		return "", fmt.Errorf("%w: unknown appointment status %q", ErrValidation, s)
	}
	return status, nil
}

// IsTerminal true для completed, cancelled и no_show
func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// CanTransitionTo проверяет, разрешен ли переход s -> target по таблице переходов
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	_, ok := appointmentTransitions[s][target]
	return ok
}

// Appointment запись клиента на услугу в определенное время
type Appointment struct {
	ID         string
	ClientID   string
	ServiceID  string
	LocationID *string
	TankID     *string
	StartTime  time.Time
	EndTime    time.Time
	Status     AppointmentStatus
	Notes      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAppointmentParams параметры создания записи
type NewAppointmentParams struct {
	ClientID   string
	ServiceID  string
	LocationID *string
	TankID     *string
	StartTime  time.Time
	EndTime    time.Time
	Notes      *string
	Now        time.Time
}

// NewAppointment создает запись в статусе pending
// Запись с EndTime <= StartTime создать нельзя
func NewAppointment(p NewAppointmentParams) (*Appointment, error) {
	clientID := strings.TrimSpace(p.ClientID)
	if clientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", ErrValidation)
	}
	serviceID := strings.TrimSpace(p.ServiceID)
	if serviceID == "" {
		return nil, fmt.Errorf("%w: serviceId is required", ErrValidation)
	}
	if p.LocationID != nil && strings.TrimSpace(*p.LocationID) == "" {
		return nil, fmt.Errorf("%w: locationId must not be empty", ErrValidation)
	}
	if err := validateWindow(p.StartTime, p.EndTime); err != nil {
		return nil, err
	}
	if p.Notes != nil && len(*p.Notes) > MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrValidation, MaxNotesLength)
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}

	return &Appointment{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		ServiceID:  serviceID,
		LocationID: p.LocationID,
		TankID:     p.TankID,
		StartTime:  p.StartTime,
		EndTime:    p.EndTime,
		Status:     StatusPending,
		Notes:      p.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrValidation)
	}
	if end.Sub(start) > MaxAppointmentMinutes*time.Minute {
		return fmt.Errorf("%w: window must not exceed %d minutes", ErrValidation, MaxAppointmentMinutes)
	}
	return nil
}

// Transition возвращает копию записи в статусе target
// Из терминального статуса переход невозможен: ErrConflict, исходная запись не меняется
func (a Appointment) Transition(target AppointmentStatus, now time.Time) (*Appointment, error) {
	if _, ok := appointmentTransitions[target]; !ok {
		return nil, fmt.Errorf("%w: unknown appointment status %q", ErrValidation, target)
	}
	if a.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: appointment %s is %s and can no longer be changed", ErrConflict, a.ID, a.Status)
	}
	if !a.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: transition %s -> %s is not allowed", ErrConflict, a.Status, target)
	}

	next := a
	next.Status = target
	next.UpdatedAt = now
	return &next, nil
}

// Reschedule возвращает копию записи с новым временем
// Переносить можно только записи, которые еще можно отменить
func (a Appointment) Reschedule(start, end, now time.Time) (*Appointment, error) {
	if !a.IsCancellable() {
		return nil, fmt.Errorf("%w: appointment %s is %s and can no longer be changed", ErrConflict, a.ID, a.Status)
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	next := a
	next.StartTime = start
	next.EndTime = end
	next.UpdatedAt = now
	return &next, nil
}

// IsPast true, если сеанс уже закончился
func (a *Appointment) IsPast(now time.Time) bool {
	return a.EndTime.Before(now)
}

// IsToday true, если сеанс начинается в календарный день now
func (a *Appointment) IsToday(now time.Time) bool {
	y1, m1, d1 := a.StartTime.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsCancellable true для записей в статусах pending и confirmed
func (a *Appointment) IsCancellable() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsActive true, если запись занимает ресурс
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// DurationMinutes длительность сеанса в минутах
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// AppointmentFilter фильтр списка записей
type AppointmentFilter struct {
	ClientID   *string
	LocationID *string
	Status     *AppointmentStatus
	StartDate  *time.Time // начало периода (включительно) по StartTime
	EndDate    *time.Time // конец периода (не включительно) по StartTime
}
