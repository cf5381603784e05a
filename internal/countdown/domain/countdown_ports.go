package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrCountdownNotFound = errors.New("countdown not found")
	ErrInvalidCountdown  = errors.New("invalid countdown")
)

type CountdownRepository interface {
	Create(ctx context.Context, c *Countdown) error
	GetByID(ctx context.Context, id uuid.UUID) (*Countdown, error)
	Update(ctx context.Context, c *Countdown) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// List ordena por target_at ascendente.
	List(ctx context.Context) ([]*Countdown, error)
}
