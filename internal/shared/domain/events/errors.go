package events

import (
	"errors"
	"fmt"
)

var (
	ErrSerializationFailed = errors.New("event serialization failed")
	ErrStorageFailed       = errors.New("event storage failed")
	ErrBroadcastFailed     = errors.New("event broadcast failed")

	// ErrPublishingFailed es el único tipo visible desde fuera del publisher.
	// Se compara con errors.Is; el detalle está en *PublishingError.
	ErrPublishingFailed = errors.New("event publishing failed")
)

// PublishingError envuelve la causa original con el tipo de evento afectado.
type PublishingError struct {
	EventType   EventType
	AggregateID string
	Cause       error
}

func (e *PublishingError) Error() string {
	return fmt.Sprintf("publishing %s (aggregate %s) failed: %v", e.EventType, e.AggregateID, e.Cause)
}

func (e *PublishingError) Unwrap() error { return e.Cause }

func (e *PublishingError) Is(target error) bool { return target == ErrPublishingFailed }

// NewPublishingError construye el error a partir del evento que falló.
func NewPublishingError(evt DomainEvent, cause error) *PublishingError {
	return &PublishingError{
		EventType:   evt.EventType(),
		AggregateID: evt.AggregateID(),
		Cause:       cause,
	}
}
