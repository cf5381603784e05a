package mocks

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	announcementDomain "github.com/davicafu/infopanel/internal/announcement/domain"
)

// InMemoryAnnouncementRepo simula AnnouncementRepository. Guarda copias sin
// buffer de eventos, como haría una base de datos.
type InMemoryAnnouncementRepo struct {
	mu    sync.Mutex
	Items map[uuid.UUID]announcementDomain.Announcement
	// FailWrites hace fallar Create/Update/DeleteByID.
	FailWrites error
}

var ErrRepoDown = errors.New("repository unavailable")

func NewInMemoryAnnouncementRepo() *InMemoryAnnouncementRepo {
	return &InMemoryAnnouncementRepo{Items: make(map[uuid.UUID]announcementDomain.Announcement)}
}

func snapshotAnnouncement(a *announcementDomain.Announcement) announcementDomain.Announcement {
	c := *a
	c.ClearDomainEvents()
	return c
}

func (r *InMemoryAnnouncementRepo) Create(ctx context.Context, a *announcementDomain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	r.Items[a.ID] = snapshotAnnouncement(a)
	return nil
}

func (r *InMemoryAnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*announcementDomain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Items[id]
	if !ok {
		return nil, announcementDomain.ErrAnnouncementNotFound
	}
	return &a, nil
}

func (r *InMemoryAnnouncementRepo) Update(ctx context.Context, a *announcementDomain.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	if _, ok := r.Items[a.ID]; !ok {
		return announcementDomain.ErrAnnouncementNotFound
	}
	r.Items[a.ID] = snapshotAnnouncement(a)
	return nil
}

func (r *InMemoryAnnouncementRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWrites != nil {
		return r.FailWrites
	}
	if _, ok := r.Items[id]; !ok {
		return announcementDomain.ErrAnnouncementNotFound
	}
	delete(r.Items, id)
	return nil
}

func (r *InMemoryAnnouncementRepo) List(ctx context.Context, f announcementDomain.AnnouncementFilter) ([]*announcementDomain.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*announcementDomain.Announcement
	for _, a := range r.Items {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

var _ announcementDomain.AnnouncementRepository = (*InMemoryAnnouncementRepo)(nil)
