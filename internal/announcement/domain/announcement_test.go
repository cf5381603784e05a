package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

func newPending(t *testing.T) *Announcement {
	t.Helper()
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	a, err := NewAnnouncement("Corte de agua", "De 10 a 12h", "conserjeria", start, start.Add(48*time.Hour))
	require.NoError(t, err)
	return a
}

func eventTypes(a *Announcement) []sharedEvents.EventType {
	var out []sharedEvents.EventType
	for _, e := range a.DomainEvents() {
		out = append(out, e.EventType())
	}
	return out
}

func TestNewAnnouncement_RecordsCreated(t *testing.T) {
	// Arrange + Act
	a := newPending(t)

	// Assert
	assert.Equal(t, StatusPending, a.Status)
	require.Len(t, a.DomainEvents(), 1)
	evt := a.DomainEvents()[0]
	assert.Equal(t, sharedEvents.AnnouncementCreated, evt.EventType())
	assert.Equal(t, a.ID.String(), evt.AggregateID())
	assert.Equal(t, AggregateType, evt.AggregateType())
	assert.Equal(t, "Corte de agua", evt.Payload()["title"])
	assert.Equal(t, "2026-06-01 08:00:00", evt.Payload()["startsAt"])
}

func TestNewAnnouncement_Validation(t *testing.T) {
	start := time.Now().UTC()
	tests := []struct {
		name  string
		title string
		end   time.Time
	}{
		{"título vacío", "   ", time.Time{}},
		{"fin antes del inicio", "Aviso", start.Add(-time.Hour)},
		{"fin igual al inicio", "Aviso", start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAnnouncement(tt.title, "", "admin", start, tt.end)

			assert.Nil(t, a)
			assert.ErrorIs(t, err, ErrInvalidAnnouncement)
		})
	}
}

func TestNewAnnouncement_DefaultsStartToNow(t *testing.T) {
	before := time.Now().UTC()

	a, err := NewAnnouncement("Aviso", "", "admin", time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.False(t, a.StartsAt.Before(before))
	assert.True(t, a.EndsAt.IsZero())
}

func TestAnnouncement_ApproveFlow(t *testing.T) {
	a := newPending(t)
	a.ClearDomainEvents()

	require.NoError(t, a.Approve("directora"))

	assert.Equal(t, StatusApproved, a.Status)
	assert.Equal(t, "directora", a.ApprovedBy)
	assert.Equal(t, []sharedEvents.EventType{sharedEvents.AnnouncementApproved}, eventTypes(a))
	assert.Equal(t, "directora", a.DomainEvents()[0].Payload()["approvedBy"])

	// Una segunda aprobación es una transición inválida y no registra nada
	err := a.Approve("otra")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Len(t, a.DomainEvents(), 1)
}

func TestAnnouncement_ApproveRequiresApprover(t *testing.T) {
	a := newPending(t)

	assert.ErrorIs(t, a.Approve(" "), ErrInvalidAnnouncement)
	assert.Equal(t, StatusPending, a.Status)
}

func TestAnnouncement_RejectOnlyFromPending(t *testing.T) {
	a := newPending(t)
	require.NoError(t, a.Reject("fuera de plazo"))
	assert.Equal(t, StatusRejected, a.Status)
	assert.Equal(t, "fuera de plazo", a.RejectionReason)

	assert.ErrorIs(t, a.Reject("otra vez"), ErrInvalidTransition)
	assert.ErrorIs(t, a.Approve("admin"), ErrInvalidTransition)
}

func TestAnnouncement_UpdateResetsToPending(t *testing.T) {
	a := newPending(t)
	require.NoError(t, a.Approve("admin"))
	a.ClearDomainEvents()

	err := a.Update("Corte de agua (ampliado)", "De 10 a 14h", time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, a.Status)
	assert.Empty(t, a.ApprovedBy)
	assert.Equal(t, []sharedEvents.EventType{sharedEvents.AnnouncementUpdated}, eventTypes(a))
	assert.Equal(t, "", a.DomainEvents()[0].Payload()["endsAt"])
}

func TestAnnouncement_UpdateInvalidKeepsState(t *testing.T) {
	a := newPending(t)
	a.ClearDomainEvents()

	err := a.Update("", "x", time.Time{}, time.Time{})

	assert.ErrorIs(t, err, ErrInvalidAnnouncement)
	assert.Equal(t, "Corte de agua", a.Title)
	assert.Empty(t, a.DomainEvents())
}

func TestAnnouncement_EventPayloadIsSnapshot(t *testing.T) {
	a := newPending(t)
	created := a.DomainEvents()[0]

	require.NoError(t, a.Update("Otro título", "", time.Time{}, time.Time{}))

	assert.Equal(t, "Corte de agua", created.Payload()["title"])
}

func TestAnnouncement_MarkDeleted(t *testing.T) {
	a := newPending(t)
	a.ClearDomainEvents()

	a.MarkDeleted()

	assert.Equal(t, []sharedEvents.EventType{sharedEvents.AnnouncementDeleted}, eventTypes(a))
}

func TestAnnouncement_IsVisibleAt(t *testing.T) {
	a := newPending(t)
	inside := a.StartsAt.Add(time.Hour)
	assert.False(t, a.IsVisibleAt(inside), "pending no se muestra")

	require.NoError(t, a.Approve("admin"))
	assert.True(t, a.IsVisibleAt(inside))
	assert.True(t, a.IsVisibleAt(a.StartsAt))
	assert.False(t, a.IsVisibleAt(a.StartsAt.Add(-time.Second)))
	assert.False(t, a.IsVisibleAt(a.EndsAt))

	a.EndsAt = time.Time{}
	assert.True(t, a.IsVisibleAt(a.StartsAt.Add(365*24*time.Hour)))
}
