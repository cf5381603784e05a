package domain

import (
	"time"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// Los eventos copian los valores en el momento de la transición: el payload
// no depende del estado posterior del agregado.

type AnnouncementCreatedEvent struct {
	sharedEvents.BaseEvent
	Title    string
	Author   string
	StartsAt time.Time
	EndsAt   time.Time
}

func newCreatedEvent(a *Announcement) AnnouncementCreatedEvent {
	return AnnouncementCreatedEvent{
		BaseEvent: sharedEvents.NewBaseEvent(a.ID.String(), AggregateType),
		Title:     a.Title,
		Author:    a.Author,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
	}
}

func (e AnnouncementCreatedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.AnnouncementCreated
}

func (e AnnouncementCreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"title":    e.Title,
		"author":   e.Author,
		"startsAt": sharedEvents.FormatDate(e.StartsAt),
		"endsAt":   sharedEvents.FormatDate(e.EndsAt),
	}
}

type AnnouncementUpdatedEvent struct {
	sharedEvents.BaseEvent
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
}

func newUpdatedEvent(a *Announcement) AnnouncementUpdatedEvent {
	return AnnouncementUpdatedEvent{
		BaseEvent: sharedEvents.NewBaseEvent(a.ID.String(), AggregateType),
		Title:     a.Title,
		StartsAt:  a.StartsAt,
		EndsAt:    a.EndsAt,
	}
}

func (e AnnouncementUpdatedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.AnnouncementUpdated
}

func (e AnnouncementUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"title":    e.Title,
		"startsAt": sharedEvents.FormatDate(e.StartsAt),
		"endsAt":   sharedEvents.FormatDate(e.EndsAt),
	}
}

type AnnouncementApprovedEvent struct {
	sharedEvents.BaseEvent
	ApprovedBy string
}

func newApprovedEvent(a *Announcement) AnnouncementApprovedEvent {
	return AnnouncementApprovedEvent{
		BaseEvent:  sharedEvents.NewBaseEvent(a.ID.String(), AggregateType),
		ApprovedBy: a.ApprovedBy,
	}
}

func (e AnnouncementApprovedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.AnnouncementApproved
}

func (e AnnouncementApprovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"approvedBy": e.ApprovedBy}
}

type AnnouncementRejectedEvent struct {
	sharedEvents.BaseEvent
	Reason string
}

func newRejectedEvent(a *Announcement) AnnouncementRejectedEvent {
	return AnnouncementRejectedEvent{
		BaseEvent: sharedEvents.NewBaseEvent(a.ID.String(), AggregateType),
		Reason:    a.RejectionReason,
	}
}

func (e AnnouncementRejectedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.AnnouncementRejected
}

func (e AnnouncementRejectedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"reason": e.Reason}
}

type AnnouncementDeletedEvent struct {
	sharedEvents.BaseEvent
	Title string
}

func newDeletedEvent(a *Announcement) AnnouncementDeletedEvent {
	return AnnouncementDeletedEvent{
		BaseEvent: sharedEvents.NewBaseEvent(a.ID.String(), AggregateType),
		Title:     a.Title,
	}
}

func (e AnnouncementDeletedEvent) EventType() sharedEvents.EventType {
	return sharedEvents.AnnouncementDeleted
}

func (e AnnouncementDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"title": e.Title}
}

// Verificación estática.
var (
	_ sharedEvents.DomainEvent = AnnouncementCreatedEvent{}
	_ sharedEvents.DomainEvent = AnnouncementUpdatedEvent{}
	_ sharedEvents.DomainEvent = AnnouncementApprovedEvent{}
	_ sharedEvents.DomainEvent = AnnouncementRejectedEvent{}
	_ sharedEvents.DomainEvent = AnnouncementDeletedEvent{}
	_ sharedEvents.Recorder    = (*Announcement)(nil)
)
