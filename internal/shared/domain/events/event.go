package events

import (
	"time"

	"github.com/google/uuid"
)

// OccurredAtLayout es el formato canónico de occurredAt (siempre UTC).
const OccurredAtLayout = "2006-01-02 15:04:05"

// DefaultVersion es la versión de esquema por defecto de un evento.
const DefaultVersion = 1

// DomainEvent describe un hecho del dominio que ya ocurrió.
// Los eventos concretos embeben BaseEvent y sólo aportan EventType y Payload.
type DomainEvent interface {
	EventID() uuid.UUID
	OccurredAt() time.Time
	Version() int
	AggregateID() string
	AggregateType() string
	EventType() EventType
	// Payload debe ser puro: datos planos, fechas ya formateadas, sin I/O.
	Payload() map[string]interface{}
}

// BaseEvent guarda los metadatos comunes. Sus campos no se exportan para
// que nadie pueda modificarlos después de construir el evento.
type BaseEvent struct {
	eventID       uuid.UUID
	occurredAt    time.Time
	version       int
	aggregateID   string
	aggregateType string
}

// NewBaseEvent genera eventId y occurredAt en el momento de la transición.
func NewBaseEvent(aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		eventID:       uuid.New(),
		occurredAt:    time.Now().UTC(),
		version:       DefaultVersion,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
	}
}

func (e BaseEvent) EventID() uuid.UUID { return e.eventID }
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }
func (e BaseEvent) Version() int { return e.version }
func (e BaseEvent) AggregateID() string { return e.aggregateID }
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// Envelope es la forma canónica (almacenamiento y cable) de un evento.
type Envelope struct {
	EventID       string                 `json:"eventId"`
	EventType     string                 `json:"eventType"`
	AggregateID   string                 `json:"aggregateId"`
	AggregateType string                 `json:"aggregateType"`
	Payload       map[string]interface{} `json:"payload"`
	OccurredAt    string                 `json:"occurredAt"`
	Version       int                    `json:"version"`
}

// ToEnvelope construye la forma canónica que usan todos los pasos posteriores.
func ToEnvelope(e DomainEvent) Envelope {
	payload := e.Payload()
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return Envelope{
		EventID:       e.EventID().String(),
		EventType:     string(e.EventType()),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		Payload:       payload,
		OccurredAt:    FormatOccurredAt(e.OccurredAt()),
		Version:       e.Version(),
	}
}

// FormatOccurredAt formatea un instante en el layout canónico, en UTC.
func FormatOccurredAt(t time.Time) string {
	return t.UTC().Format(OccurredAtLayout)
}

// ParseOccurredAt es la inversa de FormatOccurredAt.
func ParseOccurredAt(s string) (time.Time, error) {
	return time.ParseInLocation(OccurredAtLayout, s, time.UTC)
}

// FormatDate se usa en los payloads para no transportar time.Time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FormatOccurredAt(t)
}
