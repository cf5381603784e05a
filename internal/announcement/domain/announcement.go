package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// AggregateType identifica a los anuncios en los eventos.
const AggregateType = "Announcement"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Announcement es un aviso que se muestra en la pantalla una vez aprobado.
type Announcement struct {
	sharedEvents.AggregateRoot `json:"-"`

	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Body            string    `json:"body"`
	Author          string    `json:"author"`
	Status          Status    `json:"status"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"` // cero = sin fecha de fin
	ApprovedBy      string    `json:"approved_by,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewAnnouncement crea el anuncio en estado pending y registra announcement.created.
func NewAnnouncement(title, body, author string, startsAt, endsAt time.Time) (*Announcement, error) {
	now := time.Now().UTC()
	if startsAt.IsZero() {
		startsAt = now
	}
	if err := validate(title, startsAt, endsAt); err != nil {
		return nil, err
	}

	a := &Announcement{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(title),
		Body:      body,
		Author:    author,
		Status:    StatusPending,
		StartsAt:  startsAt.UTC(),
		EndsAt:    endsAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.RecordEvent(newCreatedEvent(a))
	return a, nil
}

// --- Métodos de dominio ---

// Update cambia el contenido y devuelve el anuncio a pending: hay que volver a aprobarlo.
func (a *Announcement) Update(title, body string, startsAt, endsAt time.Time) error {
	if startsAt.IsZero() {
		startsAt = a.StartsAt
	}
	if err := validate(title, startsAt, endsAt); err != nil {
		return err
	}

	a.Title = strings.TrimSpace(title)
	a.Body = body
	a.StartsAt = startsAt.UTC()
	a.EndsAt = endsAt.UTC()
	a.Status = StatusPending
	a.ApprovedBy = ""
	a.RejectionReason = ""
	a.UpdatedAt = time.Now().UTC()
	a.RecordEvent(newUpdatedEvent(a))
	return nil
}

func (a *Announcement) Approve(approver string) error {
	if a.Status != StatusPending {
		return fmt.Errorf("%w: cannot approve a %s announcement", ErrInvalidTransition, a.Status)
	}
	if strings.TrimSpace(approver) == "" {
		return fmt.Errorf("%w: approver is required", ErrInvalidAnnouncement)
	}

	a.Status = StatusApproved
	a.ApprovedBy = approver
	a.UpdatedAt = time.Now().UTC()
	a.RecordEvent(newApprovedEvent(a))
	return nil
}

func (a *Announcement) Reject(reason string) error {
	if a.Status != StatusPending {
		return fmt.Errorf("%w: cannot reject a %s announcement", ErrInvalidTransition, a.Status)
	}

	a.Status = StatusRejected
	a.RejectionReason = reason
	a.UpdatedAt = time.Now().UTC()
	a.RecordEvent(newRejectedEvent(a))
	return nil
}

// MarkDeleted registra el borrado; eliminar la fila es cosa del repositorio.
func (a *Announcement) MarkDeleted() {
	a.RecordEvent(newDeletedEvent(a))
}

// IsVisibleAt indica si el anuncio debe mostrarse en el instante t.
func (a *Announcement) IsVisibleAt(t time.Time) bool {
	if a.Status != StatusApproved || t.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt.IsZero() || t.Before(a.EndsAt)
}

func validate(title string, startsAt, endsAt time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidAnnouncement)
	}
	if !endsAt.IsZero() && !endsAt.After(startsAt) {
		return fmt.Errorf("%w: ends_at must be after starts_at", ErrInvalidAnnouncement)
	}
	return nil
}
