package events

import (
	"context"
	"time"
)

// EventPublisher es lo que usan las operaciones de negocio.
type EventPublisher interface {
	// Publish pasa un evento por el pipeline completo. Cualquier fallo se
	// devuelve como *PublishingError.
	Publish(ctx context.Context, evt DomainEvent) error

	// PublishAll publica en orden y se detiene en el primer fallo. No es
	// transaccional: los eventos anteriores al que falla ya quedaron
	// almacenados y difundidos, los posteriores no se intentan.
	PublishAll(ctx context.Context, evts []DomainEvent) error
}

// Record es lo que recibe el event store: el sobre serializado más las
// claves por las que se indexa.
type Record struct {
	EventID       string
	EventType     string
	AggregateID   string
	AggregateType string
	OccurredAt    time.Time
	Version       int
	Data          []byte // JSON del Envelope
}

// NewRecord empareja un sobre con su serialización.
func NewRecord(env Envelope, data []byte) Record {
	occurredAt, _ := ParseOccurredAt(env.OccurredAt)
	return Record{
		EventID:       env.EventID,
		EventType:     env.EventType,
		AggregateID:   env.AggregateID,
		AggregateType: env.AggregateType,
		OccurredAt:    occurredAt,
		Version:       env.Version,
		Data:          data,
	}
}

// EventStore es el log durable y append-only (sistema de registro).
type EventStore interface {
	Store(ctx context.Context, record Record) error
}

// EventHistory lo implementan los stores que además permiten leer.
type EventHistory interface {
	ListByAggregate(ctx context.Context, aggregateID string) ([]Record, error)
}

// Dispatch aplica la disciplina única de las operaciones: leer el buffer,
// publicar y vaciarlo. El buffer se vacía aunque la publicación falle, para
// que la misma instancia no vuelva a emitir esos eventos más tarde.
func Dispatch(ctx context.Context, publisher EventPublisher, r Recorder) error {
	pending := r.DomainEvents()
	defer r.ClearDomainEvents()

	if len(pending) == 0 || publisher == nil {
		return nil
	}
	return publisher.PublishAll(ctx, pending)
}
