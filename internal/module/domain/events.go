package domain

import sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"

type ModuleUpdatedEvent struct {
	sharedEvents.BaseEvent
	Name     string
	Position int
}

func (e ModuleUpdatedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.ModuleUpdated
}

func (e ModuleUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"name": e.Name, "position": e.Position}
}

type ModuleToggledEvent struct {
	sharedEvents.BaseEvent
	Enabled bool
}

func (e ModuleToggledEvent) EventType() sharedEvents.EventType {
	return sharedEvents.ModuleToggled
}

func (e ModuleToggledEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"enabled": e.Enabled}
}

var (
	_ sharedEvents.DomainEvent = ModuleUpdatedEvent{}
	_ sharedEvents.DomainEvent = ModuleToggledEvent{}
)
