package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/infopanel/internal/announcement/domain"
	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/internal/shared/infra/utils"
)

// AnnouncementService define los casos de uso relacionados con Announcement.
type AnnouncementService struct {
	repo      domain.AnnouncementRepository
	publisher sharedEvents.EventPublisher
	log       *zap.Logger
}

// NewAnnouncementService constructor
func NewAnnouncementService(repo domain.AnnouncementRepository, publisher sharedEvents.EventPublisher, log *zap.Logger) *AnnouncementService {
	return &AnnouncementService{repo: repo, publisher: publisher, log: log}
}

// AnnouncementInput son los campos editables de un anuncio.
type AnnouncementInput struct {
	Title    string
	Body     string
	StartsAt time.Time
	EndsAt   time.Time
}

func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, author string, in AnnouncementInput) (*domain.Announcement, error) {
	a, err := domain.NewAnnouncement(in.Title, in.Body, author, in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.dispatch(ctx, a)
	return a, nil
}

func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id uuid.UUID, in AnnouncementInput) (*domain.Announcement, error) {
	return s.mutate(ctx, id, func(a *domain.Announcement) error {
		return a.Update(in.Title, in.Body, in.StartsAt, in.EndsAt)
	})
}

func (s *AnnouncementService) ApproveAnnouncement(ctx context.Context, id uuid.UUID, approver string) (*domain.Announcement, error) {
	return s.mutate(ctx, id, func(a *domain.Announcement) error {
		return a.Approve(approver)
	})
}

func (s *AnnouncementService) RejectAnnouncement(ctx context.Context, id uuid.UUID, reason string) (*domain.Announcement, error) {
	return s.mutate(ctx, id, func(a *domain.Announcement) error {
		return a.Reject(reason)
	})
}

func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	a, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return err
	}
	a.MarkDeleted()
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.dispatch(ctx, a)
	return nil
}

// GetAnnouncement va al repo con reintentos; un not found no se reintenta.
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var a *domain.Announcement
	err := utils.RetryUnless(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		a, err = s.repo.GetByID(ctx, id)
		return err
	}, domain.ErrAnnouncementNotFound)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) ListAnnouncements(ctx context.Context, f domain.AnnouncementFilter) ([]*domain.Announcement, error) {
	return s.repo.List(ctx, f)
}

// ListVisible devuelve lo que la pantalla debe mostrar en el instante now.
func (s *AnnouncementService) ListVisible(ctx context.Context, now time.Time) ([]*domain.Announcement, error) {
	approved, err := s.repo.List(ctx, domain.AnnouncementFilter{Status: domain.StatusApproved})
	if err != nil {
		return nil, err
	}
	visible := make([]*domain.Announcement, 0, len(approved))
	for _, a := range approved {
		if a.IsVisibleAt(now) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

// mutate carga, aplica la transición, persiste y despacha los eventos.
func (s *AnnouncementService) mutate(ctx context.Context, id uuid.UUID, change func(*domain.Announcement) error) (*domain.Announcement, error) {
	a, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(a); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.dispatch(ctx, a)
	return a, nil
}

// dispatch nunca devuelve error: el cambio de estado ya está guardado.
func (s *AnnouncementService) dispatch(ctx context.Context, a *domain.Announcement) {
	if err := sharedEvents.Dispatch(ctx, s.publisher, a); err != nil {
		s.log.Error("⚠️ No se pudieron publicar los eventos del anuncio",
			zap.String("aggregate_id", a.ID.String()),
			zap.Error(err))
	}
}
