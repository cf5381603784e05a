package domain

import (
	"time"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

type CountdownCreatedEvent struct {
	sharedEvents.BaseEvent
	Title    string
	TargetAt time.Time
}

func (e CountdownCreatedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.CountdownCreated
}

func (e CountdownCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"title":    e.Title,
		"targetAt": sharedEvents.FormatDate(e.TargetAt),
	}
}

type CountdownUpdatedEvent struct {
	sharedEvents.BaseEvent
	Title            string
	TargetAt         time.Time
	PreviousTargetAt time.Time
}

func (e CountdownUpdatedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.CountdownUpdated
}

func (e CountdownUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"title":            e.Title,
		"targetAt":         sharedEvents.FormatDate(e.TargetAt),
		"previousTargetAt": sharedEvents.FormatDate(e.PreviousTargetAt),
	}
}

type CountdownDeletedEvent struct {
	sharedEvents.BaseEvent
	Title string
}

func (e CountdownDeletedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.CountdownDeleted
}

func (e CountdownDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"title": e.Title}
}

var (
	_ sharedEvents.DomainEvent = CountdownCreatedEvent{}
	_ sharedEvents.DomainEvent = CountdownUpdatedEvent{}
	_ sharedEvents.DomainEvent = CountdownDeletedEvent{}
)
