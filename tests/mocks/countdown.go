package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	countdownDomain "github.com/davicafu/infopanel/internal/countdown/domain"
)

// InMemoryCountdownRepo simula CountdownRepository.
type InMemoryCountdownRepo struct {
	mu         sync.Mutex
	Items      map[uuid.UUID]countdownDomain.Countdown
	FailWrites error
}

func NewInMemoryCountdownRepo() *InMemoryCountdownRepo {
	return &InMemoryCountdownRepo{Items: make(map[uuid.UUID]countdownDomain.Countdown)}
}

func snapshotCountdown(c *countdownDomain.Countdown) countdownDomain.Countdown {
	s := *c
	s.ClearDomainEvents()
	return s
}

func (r *InMemoryCountdownRepo) Create(ctx context.Context, c *countdownDomain.Countdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	r.Items[c.ID] = snapshotCountdown(c)
	return nil
}

func (r *InMemoryCountdownRepo) GetByID(ctx context.Context, id uuid.UUID) (*countdownDomain.Countdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Items[id]
	if !ok {
		return nil, countdownDomain.ErrCountdownNotFound
	}
	return &c, nil
}

func (r *InMemoryCountdownRepo) Update(ctx context.Context, c *countdownDomain.Countdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	if _, ok := r.Items[c.ID]; !ok {
		return countdownDomain.ErrCountdownNotFound
	}
	r.Items[c.ID] = snapshotCountdown(c)
	return nil
}

func (r *InMemoryCountdownRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	if _, ok := r.Items[id]; !ok {
		return countdownDomain.ErrCountdownNotFound
	}
	delete(r.Items, id)
	return nil
}

func (r *InMemoryCountdownRepo) List(ctx context.Context) ([]*countdownDomain.Countdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*countdownDomain.Countdown, 0, len(r.Items))
	for _, c := range r.Items {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetAt.Before(out[j].TargetAt) })
	return out, nil
}

var _ countdownDomain.CountdownRepository = (*InMemoryCountdownRepo)(nil)
