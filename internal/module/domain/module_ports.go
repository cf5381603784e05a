package domain

import (
	"context"
	"errors"
)

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrInvalidModule  = errors.New("invalid module")
)

type ModuleRepository interface {
	// Save inserta o actualiza por clave.
	Save(ctx context.Context, m *Module) error
	// Debe devolver ErrModuleNotFound si no existe.
	GetByKey(ctx context.Context, key string) (*Module, error)
	// List ordena por posición y clave.
	List(ctx context.Context) ([]*Module, error)
}

// CacheKeyAll es la clave de la lista completa en la caché.
const CacheKeyAll = "modules:all"
