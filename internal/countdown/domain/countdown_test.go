package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

func TestNewCountdown(t *testing.T) {
	target := time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC)

	c, err := NewCountdown(" Nochebuena ", target)

	require.NoError(t, err)
	assert.Equal(t, "Nochebuena", c.Title)
	require.Len(t, c.DomainEvents(), 1)
	evt := c.DomainEvents()[0]
	assert.Equal(t, sharedEvents.CountdownCreated, evt.EventType())
	assert.Equal(t, AggregateType, evt.AggregateType())
	assert.Equal(t, "2026-12-24 18:00:00", evt.Payload()["targetAt"])
}

func TestNewCountdown_Validation(t *testing.T) {
	_, err := NewCountdown("", time.Now())
	assert.ErrorIs(t, err, ErrInvalidCountdown)

	_, err = NewCountdown("Fin de curso", time.Time{})
	assert.ErrorIs(t, err, ErrInvalidCountdown)
}

func TestCountdown_UpdateCarriesPreviousTarget(t *testing.T) {
	first := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	c, _ := NewCountdown("Fin de curso", first)
	c.ClearDomainEvents()

	require.NoError(t, c.Update("Fin de curso", first.Add(48*time.Hour)))

	require.Len(t, c.DomainEvents(), 1)
	payload := c.DomainEvents()[0].Payload()
	assert.Equal(t, "2026-06-22 00:00:00", payload["targetAt"])
	assert.Equal(t, "2026-06-20 00:00:00", payload["previousTargetAt"])
}

func TestCountdown_UpdateInvalidRecordsNothing(t *testing.T) {
	c, _ := NewCountdown("Fin de curso", time.Now().Add(time.Hour))
	c.ClearDomainEvents()

	assert.ErrorIs(t, c.Update(" ", time.Now()), ErrInvalidCountdown)
	assert.Empty(t, c.DomainEvents())
}

func TestCountdown_MarkDeleted(t *testing.T) {
	c, _ := NewCountdown("Fin de curso", time.Now().Add(time.Hour))
	c.ClearDomainEvents()

	c.MarkDeleted()

	require.Len(t, c.DomainEvents(), 1)
	assert.Equal(t, sharedEvents.CountdownDeleted, c.DomainEvents()[0].EventType())
}

func TestCountdown_Remaining(t *testing.T) {
	target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c, _ := NewCountdown("Año nuevo", target)

	assert.Equal(t, 90*time.Minute, c.Remaining(target.Add(-90*time.Minute)))
	assert.Equal(t, time.Duration(0), c.Remaining(target))
	assert.Equal(t, time.Duration(0), c.Remaining(target.Add(time.Hour)))
	assert.False(t, c.IsExpired(target.Add(-time.Second)))
	assert.True(t, c.IsExpired(target))
}
