package mocks

import (
	"context"
	"sort"
	"sync"

	moduleDomain "github.com/davicafu/infopanel/internal/module/domain"
)

// InMemoryModuleRepo simula ModuleRepository.
type InMemoryModuleRepo struct {
	mu    sync.Mutex
	Items map[string]moduleDomain.Module
	Lists int // número de llamadas a List
}

func NewInMemoryModuleRepo() *InMemoryModuleRepo {
	return &InMemoryModuleRepo{Items: make(map[string]moduleDomain.Module)}
}

func (r *InMemoryModuleRepo) Save(ctx context.Context, m *moduleDomain.Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *m
	c.ClearDomainEvents()
	r.Items[m.Key] = c
	return nil
}

func (r *InMemoryModuleRepo) GetByKey(ctx context.Context, key string) (*moduleDomain.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.Items[key]
	if !ok {
		return nil, moduleDomain.ErrModuleNotFound
	}
	return &m, nil
}

func (r *InMemoryModuleRepo) List(ctx context.Context) ([]*moduleDomain.Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lists++
	out := make([]*moduleDomain.Module, 0, len(r.Items))
	for _, m := range r.Items {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// ListCalls devuelve cuántas veces se ha llamado a List.
func (r *InMemoryModuleRepo) ListCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Lists
}

var _ moduleDomain.ModuleRepository = (*InMemoryModuleRepo)(nil)
