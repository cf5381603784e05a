package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davicafu/infopanel/internal/announcement/domain"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
)

type AnnouncementRepoSQLite struct {
	db *sql.DB
}

func NewAnnouncementRepoSQLite(db *sql.DB) *AnnouncementRepoSQLite {
	return &AnnouncementRepoSQLite{db: db}
}

// InitSchema crea la tabla announcements si no existe.
func (r *AnnouncementRepoSQLite) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS announcements (
            id               TEXT PRIMARY KEY,
            title            TEXT NOT NULL,
            body             TEXT NOT NULL,
            author           TEXT NOT NULL,
            status           TEXT NOT NULL,
            starts_at        TEXT NOT NULL,
            ends_at          TEXT,
            approved_by      TEXT NOT NULL DEFAULT '',
            rejection_reason TEXT NOT NULL DEFAULT '',
            created_at       TEXT NOT NULL,
            updated_at       TEXT NOT NULL
        )
    `)
	return err
}

const announcementColumns = `id, title, body, author, status, starts_at, ends_at, approved_by, rejection_reason, created_at, updated_at`

func (r *AnnouncementRepoSQLite) Create(ctx context.Context, a *domain.Announcement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO announcements (`+announcementColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		a.ID.String(), a.Title, a.Body, a.Author, string(a.Status),
		sharedSQLite.FormatTime(a.StartsAt), sharedSQLite.FormatTime(a.EndsAt),
		a.ApprovedBy, a.RejectionReason,
		sharedSQLite.FormatTime(a.CreatedAt), sharedSQLite.FormatTime(a.UpdatedAt),
	)
	return err
}

func (r *AnnouncementRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`, id.String())

	a, err := scanAnnouncement(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrAnnouncementNotFound
	}
	return a, err
}

func (r *AnnouncementRepoSQLite) Update(ctx context.Context, a *domain.Announcement) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE announcements
         SET title=?, body=?, status=?, starts_at=?, ends_at=?, approved_by=?, rejection_reason=?, updated_at=?
         WHERE id=?`,
		a.Title, a.Body, string(a.Status),
		sharedSQLite.FormatTime(a.StartsAt), sharedSQLite.FormatTime(a.EndsAt),
		a.ApprovedBy, a.RejectionReason, sharedSQLite.FormatTime(a.UpdatedAt),
		a.ID.String(),
	)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepoSQLite) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id=?`, id.String())
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrAnnouncementNotFound
	}
	return nil
}

func (r *AnnouncementRepoSQLite) List(ctx context.Context, f domain.AnnouncementFilter) ([]*domain.Announcement, error) {
	var sb strings.Builder
	var args []interface{}
	sb.WriteString(`SELECT ` + announcementColumns + ` FROM announcements`)
	if f.Status != "" {
		sb.WriteString(` WHERE status = ?`)
		args = append(args, string(f.Status))
	}
	sb.WriteString(` ORDER BY starts_at, created_at`)
	if f.Limit > 0 {
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnnouncement(s scanner) (*domain.Announcement, error) {
	var a domain.Announcement
	var idStr, status string
	if err := s.Scan(&idStr, &a.Title, &a.Body, &a.Author, &status,
		sharedSQLite.ScanTime(&a.StartsAt), sharedSQLite.ScanTime(&a.EndsAt),
		&a.ApprovedBy, &a.RejectionReason,
		sharedSQLite.ScanTime(&a.CreatedAt), sharedSQLite.ScanTime(&a.UpdatedAt)); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in DB: %w", err)
	}
	a.ID = id
	a.Status = domain.Status(status)
	return &a, nil
}

// Verificación estática.
var _ domain.AnnouncementRepository = (*AnnouncementRepoSQLite)(nil)
