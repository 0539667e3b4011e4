package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType тип события в outbox (он же топик Kafka)
type EventType string

const (
	EventAppointmentCreated       EventType = "appointment.created"
	EventAppointmentStatusChanged EventType = "appointment.status_changed"
	EventAppointmentRescheduled   EventType = "appointment.rescheduled"
)

// OutboxEvent событие, записанное в той же транзакции, что и изменение состояния
type OutboxEvent struct {
	ID          string
	AggregateID string
	EventType   EventType
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// AppointmentEventPayload тело событий appointment.*
type AppointmentEventPayload struct {
	AppointmentID  string            `json:"appointmentId"`
	ClientID       string            `json:"clientId"`
	ServiceID      string            `json:"serviceId"`
	LocationID     *string           `json:"locationId,omitempty"`
	StartTime      time.Time         `json:"startTime"`
	EndTime        time.Time         `json:"endTime"`
	Status         AppointmentStatus `json:"status"`
	PreviousStatus AppointmentStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

// NewAppointmentEvent собирает outbox-событие по записи
// previous задается только для appointment.status_changed
func NewAppointmentEvent(eventType EventType, a *Appointment, previous AppointmentStatus, now time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(AppointmentEventPayload{
		AppointmentID:  a.ID,
		ClientID:       a.ClientID,
		ServiceID:      a.ServiceID,
		LocationID:     a.LocationID,
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		Status:         a.Status,
		PreviousStatus: previous,
		OccurredAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return &OutboxEvent{
		ID:          uuid.NewString(),
		AggregateID: a.ID,
		EventType:   eventType,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}
