package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/infopanel/internal/countdown/domain"
	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/internal/shared/infra/utils"
)

// CountdownService define los casos de uso de las cuentas atrás.
type CountdownService struct {
	repo      domain.CountdownRepository
	publisher sharedEvents.EventPublisher
	log       *zap.Logger
}

func NewCountdownService(repo domain.CountdownRepository, publisher sharedEvents.EventPublisher, log *zap.Logger) *CountdownService {
	return &CountdownService{repo: repo, publisher: publisher, log: log}
}

func (s *CountdownService) CreateCountdown(ctx context.Context, title string, targetAt time.Time) (*domain.Countdown, error) {
	c, err := domain.NewCountdown(title, targetAt)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.dispatch(ctx, c)
	return c, nil
}

func (s *CountdownService) UpdateCountdown(ctx context.Context, id uuid.UUID, title string, targetAt time.Time) (*domain.Countdown, error) {
	c, err := s.GetCountdown(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(title, targetAt); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.dispatch(ctx, c)
	return c, nil
}

func (s *CountdownService) DeleteCountdown(ctx context.Context, id uuid.UUID) error {
	c, err := s.GetCountdown(ctx, id)
	if err != nil {
		return err
	}
	c.MarkDeleted()
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.dispatch(ctx, c)
	return nil
}

func (s *CountdownService) GetCountdown(ctx context.Context, id uuid.UUID) (*domain.Countdown, error) {
	var c *domain.Countdown
	err := utils.RetryUnless(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		c, err = s.repo.GetByID(ctx, id)
		return err
	}, domain.ErrCountdownNotFound)
	return c, err
}

// ListCountdowns devuelve todas; con onlyActive descarta las ya vencidas en now.
func (s *CountdownService) ListCountdowns(ctx context.Context, now time.Time, onlyActive bool) ([]*domain.Countdown, error) {
	all, err := s.repo.List(ctx)
	if err != nil || !onlyActive {
		return all, err
	}
	active := make([]*domain.Countdown, 0, len(all))
	for _, c := range all {
		if !c.IsExpired(now) {
			active = append(active, c)
		}
	}
	return active, nil
}

func (s *CountdownService) dispatch(ctx context.Context, c *domain.Countdown) {
	if err := sharedEvents.Dispatch(ctx, s.publisher, c); err != nil {
		s.log.Error("⚠️ No se pudieron publicar los eventos de la cuenta atrás",
			zap.String("aggregate_id", c.ID.String()),
			zap.Error(err))
	}
}
