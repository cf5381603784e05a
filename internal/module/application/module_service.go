package application

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/infopanel/internal/module/domain"
	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/cache"
	"github.com/davicafu/infopanel/internal/shared/infra/utils"
)

// defaultListTTL se usa si no se configura CACHE_TTL.
const defaultListTTL = time.Minute

// ModuleService gestiona los módulos de la pantalla. La lista completa se
// cachea y se invalida en cada cambio.
type ModuleService struct {
	repo      domain.ModuleRepository
	cache     cache.Cache
	ttlSecs   int
	publisher sharedEvents.EventPublisher
	log       *zap.Logger

	// gen avanza con cada invalidación; un relleno leído antes queda obsoleto.
	gen atomic.Uint64
}

// NewModuleService acepta cache nil (sin caché). ttl <= 0 usa un minuto.
func NewModuleService(repo domain.ModuleRepository, c cache.Cache, ttl time.Duration, publisher sharedEvents.EventPublisher, log *zap.Logger) *ModuleService {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	ttlSecs := int(ttl / time.Second)
	if ttlSecs < 1 {
		ttlSecs = 1
	}
	return &ModuleService{repo: repo, cache: c, ttlSecs: ttlSecs, publisher: publisher, log: log}
}

// SeedDefaults crea los módulos por defecto que aún no existan. No publica nada.
func (s *ModuleService) SeedDefaults(ctx context.Context) error {
	for _, m := range domain.DefaultModules() {
		_, err := s.repo.GetByKey(ctx, m.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrModuleNotFound) {
			return err
		}
		if err := s.repo.Save(ctx, m); err != nil {
			return err
		}
		s.log.Info("🌱 Módulo sembrado", zap.String("module", m.Key))
	}
	return nil
}

func (s *ModuleService) ListModules(ctx context.Context) ([]*domain.Module, error) {
	// 1. Intentar cache
	if s.cache != nil {
		var cached []*domain.Module
		if ok, _ := s.cache.Get(ctx, domain.CacheKeyAll, &cached); ok {
			return cached, nil
		}
	}

	// 2. Ir al repo con reintentos
	gen := s.gen.Load()
	var mods []*domain.Module
	err := utils.Retry(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		mods, err = s.repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Actualizar cache en background, salvo que un cambio la haya invalidado entretanto
	cache.AsyncCacheSet(ctx, s.cache, domain.CacheKeyAll, mods, s.ttlSecs, func() bool {
		return s.gen.Load() != gen
	}, s.log)
	return mods, nil
}

func (s *ModuleService) GetModule(ctx context.Context, key string) (*domain.Module, error) {
	var m *domain.Module
	err := utils.RetryUnless(ctx, 3, 100*time.Millisecond, func() error {
		var err error
		m, err = s.repo.GetByKey(ctx, key)
		return err
	}, domain.ErrModuleNotFound)
	return m, err
}

func (s *ModuleService) UpdateModule(ctx context.Context, key, name string, position int) (*domain.Module, error) {
	return s.mutate(ctx, key, func(m *domain.Module) error {
		return m.Update(name, position)
	})
}

func (s *ModuleService) SetEnabled(ctx context.Context, key string, enabled bool) (*domain.Module, error) {
	return s.mutate(ctx, key, func(m *domain.Module) error {
		m.SetEnabled(enabled)
		return nil
	})
}

func (s *ModuleService) ToggleModule(ctx context.Context, key string) (*domain.Module, error) {
	return s.mutate(ctx, key, func(m *domain.Module) error {
		m.Toggle()
		return nil
	})
}

func (s *ModuleService) mutate(ctx context.Context, key string, change func(*domain.Module) error) (*domain.Module, error) {
	m, err := s.GetModule(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := change(m); err != nil {
		return nil, err
	}
	// Sin transición no hay nada que guardar ni publicar.
	if len(m.DomainEvents()) == 0 {
		return m, nil
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	if err := sharedEvents.Dispatch(ctx, s.publisher, m); err != nil {
		s.log.Error("⚠️ No se pudieron publicar los eventos del módulo",
			zap.String("aggregate_id", m.Key),
			zap.Error(err))
	}
	return m, nil
}

// invalidate es síncrono: el siguiente ListModules debe ver el cambio.
// La generación avanza antes del borrado.
func (s *ModuleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.gen.Add(1)
	if err := s.cache.Delete(ctx, domain.CacheKeyAll); err != nil {
		s.log.Warn("Cache deletion failed", zap.String("key", domain.CacheKeyAll), zap.Error(err))
	}
}
