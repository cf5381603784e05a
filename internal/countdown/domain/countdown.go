package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

const AggregateType = "Countdown"

// Countdown es una cuenta atrás hasta una fecha objetivo.
type Countdown struct {
	sharedEvents.AggregateRoot `json:"-"`

	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	TargetAt  time.Time `json:"target_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCountdown(title string, targetAt time.Time) (*Countdown, error) {
	if err := validate(title, targetAt); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &Countdown{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		TargetAt:  targetAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.RecordEvent(CountdownCreatedEvent{BaseEvent: c.base(), Title: c.Title, TargetAt: c.TargetAt})
	return c, nil
}

func (c *Countdown) Update(title string, targetAt time.Time) error {
	if err := validate(title, targetAt); err != nil {
		return err
	}
	previous := c.TargetAt
	c.Title = strings.TrimSpace(title)
	c.TargetAt = targetAt.UTC()
	c.UpdatedAt = time.Now().UTC()
	c.RecordEvent(CountdownUpdatedEvent{BaseEvent: c.base(), Title: c.Title, TargetAt: c.TargetAt, PreviousTargetAt: previous})
	return nil
}

func (c *Countdown) MarkDeleted() {
	c.RecordEvent(CountdownDeletedEvent{BaseEvent: c.base(), Title: c.Title})
}

// Remaining devuelve el tiempo que falta; nunca negativo.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if d := c.TargetAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

func (c *Countdown) IsExpired(now time.Time) bool {
	return !now.Before(c.TargetAt)
}

func (c *Countdown) base() sharedEvents.BaseEvent {
	return sharedEvents.NewBaseEvent(c.ID.String(), AggregateType)
}

func validate(title string, targetAt time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCountdown)
	}
	if targetAt.IsZero() {
		return fmt.Errorf("%w: target_at is required", ErrInvalidCountdown)
	}
	return nil
}
