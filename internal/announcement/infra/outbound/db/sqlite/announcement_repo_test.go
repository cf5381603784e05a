package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/infopanel/internal/announcement/domain"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
)

func setupRepo(t *testing.T) *AnnouncementRepoSQLite {
	db, err := sharedSQLite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAnnouncementRepoSQLite(db)
	require.NoError(t, repo.InitSchema(context.Background()))
	return repo
}

func TestAnnouncementRepoSQLite_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	a, err := domain.NewAnnouncement("Jornada de puertas abiertas", "Sábado", "admin", start, time.Time{})
	require.NoError(t, err)

	// Create + Get
	require.NoError(t, repo.Create(ctx, a))
	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.True(t, start.Equal(got.StartsAt))
	assert.True(t, got.EndsAt.IsZero())
	assert.Empty(t, got.DomainEvents(), "lo leído no trae eventos")

	// Update
	require.NoError(t, got.Approve("directora"))
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, "directora", got.ApprovedBy)

	// Delete
	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	_, err = repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAnnouncementNotFound)
}

func TestAnnouncementRepoSQLite_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	ghost, err := domain.NewAnnouncement("Fantasma", "", "admin", time.Time{}, time.Time{})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAnnouncementNotFound)
	assert.ErrorIs(t, repo.Update(ctx, ghost), domain.ErrAnnouncementNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, ghost.ID), domain.ErrAnnouncementNotFound)
}

func TestAnnouncementRepoSQLite_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	late, _ := domain.NewAnnouncement("Tarde", "", "admin", base.Add(2*time.Hour), time.Time{})
	early, _ := domain.NewAnnouncement("Temprano", "", "admin", base, time.Time{})
	rejected, _ := domain.NewAnnouncement("Rechazado", "", "admin", base, time.Time{})
	require.NoError(t, rejected.Reject("duplicado"))
	for _, a := range []*domain.Announcement{late, early, rejected} {
		require.NoError(t, repo.Create(ctx, a))
	}

	pending, err := repo.List(ctx, domain.AnnouncementFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "Temprano", pending[0].Title)
	assert.Equal(t, "Tarde", pending[1].Title)

	all, err := repo.List(ctx, domain.AnnouncementFilter{Limit: 1, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
