package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ---------- Errores de dominio ----------
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidAnnouncement  = errors.New("invalid announcement")
	ErrInvalidTransition    = errors.New("invalid announcement status transition")
)

// ---------- Interfaces (Ports) ----------

// AnnouncementRepository no sabe nada de eventos: sólo guarda el estado.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error

	// Debe devolver ErrAnnouncementNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error)

	// Debe devolver ErrAnnouncementNotFound si no existe.
	Update(ctx context.Context, a *Announcement) error

	// Debe devolver ErrAnnouncementNotFound si no existe.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// List devuelve los anuncios ordenados por starts_at. Status vacío = todos.
	List(ctx context.Context, f AnnouncementFilter) ([]*Announcement, error)
}

// AnnouncementFilter agrupa los criterios de List.
type AnnouncementFilter struct {
	Status Status
	Limit  int
	Offset int
}
