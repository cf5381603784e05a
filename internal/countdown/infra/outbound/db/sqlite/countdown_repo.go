package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/davicafu/infopanel/internal/countdown/domain"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
)

type CountdownRepoSQLite struct {
	db *sql.DB
}

func NewCountdownRepoSQLite(db *sql.DB) *CountdownRepoSQLite {
	return &CountdownRepoSQLite{db: db}
}

func (r *CountdownRepoSQLite) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS countdowns (
            id         TEXT PRIMARY KEY,
            title      TEXT NOT NULL,
            target_at  TEXT NOT NULL,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )
    `)
	return err
}

func (r *CountdownRepoSQLite) Create(ctx context.Context, c *domain.Countdown) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO countdowns (id, title, target_at, created_at, updated_at) VALUES (?,?,?,?,?)`,
		c.ID.String(), c.Title, sharedSQLite.FormatTime(c.TargetAt),
		sharedSQLite.FormatTime(c.CreatedAt), sharedSQLite.FormatTime(c.UpdatedAt),
	)
	return err
}

func (r *CountdownRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (*domain.Countdown, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, target_at, created_at, updated_at FROM countdowns WHERE id = ?`, id.String())
	c, err := scanCountdown(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCountdownNotFound
	}
	return c, err
}

func (r *CountdownRepoSQLite) Update(ctx context.Context, c *domain.Countdown) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE countdowns SET title=?, target_at=?, updated_at=? WHERE id=?`,
		c.Title, sharedSQLite.FormatTime(c.TargetAt), sharedSQLite.FormatTime(c.UpdatedAt), c.ID.String(),
	)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrCountdownNotFound
	}
	return nil
}

func (r *CountdownRepoSQLite) DeleteByID(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM countdowns WHERE id=?`, id.String())
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrCountdownNotFound
	}
	return nil
}

func (r *CountdownRepoSQLite) List(ctx context.Context) ([]*domain.Countdown, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, target_at, created_at, updated_at FROM countdowns ORDER BY target_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Countdown
	for rows.Next() {
		c, err := scanCountdown(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCountdown(s scanner) (*domain.Countdown, error) {
	var c domain.Countdown
	var idStr string
	if err := s.Scan(&idStr, &c.Title, sharedSQLite.ScanTime(&c.TargetAt),
		sharedSQLite.ScanTime(&c.CreatedAt), sharedSQLite.ScanTime(&c.UpdatedAt)); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in DB: %w", err)
	}
	c.ID = id
	return &c, nil
}

var _ domain.CountdownRepository = (*CountdownRepoSQLite)(nil)
