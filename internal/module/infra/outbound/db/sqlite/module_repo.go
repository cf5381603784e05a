package sqlite

import (
	"context"
	"database/sql"

	"github.com/davicafu/infopanel/internal/module/domain"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
)

type ModuleRepoSQLite struct {
	db *sql.DB
}

func NewModuleRepoSQLite(db *sql.DB) *ModuleRepoSQLite {
	return &ModuleRepoSQLite{db: db}
}

func (r *ModuleRepoSQLite) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS modules (
            key        TEXT PRIMARY KEY,
            name       TEXT NOT NULL,
            enabled    INTEGER NOT NULL,
            position   INTEGER NOT NULL,
            updated_at TEXT NOT NULL
        )
    `)
	return err
}

// Save hace upsert por clave.
func (r *ModuleRepoSQLite) Save(ctx context.Context, m *domain.Module) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO modules (key, name, enabled, position, updated_at) VALUES (?,?,?,?,?)
         ON CONFLICT(key) DO UPDATE SET
            name=excluded.name, enabled=excluded.enabled,
            position=excluded.position, updated_at=excluded.updated_at`,
		m.Key, m.Name, m.Enabled, m.Position, sharedSQLite.FormatTime(m.UpdatedAt),
	)
	return err
}

func (r *ModuleRepoSQLite) GetByKey(ctx context.Context, key string) (*domain.Module, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, name, enabled, position, updated_at FROM modules WHERE key = ?`, key)
	m, err := scanModule(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrModuleNotFound
	}
	return m, err
}

func (r *ModuleRepoSQLite) List(ctx context.Context) ([]*domain.Module, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, name, enabled, position, updated_at FROM modules ORDER BY position, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanModule(s scanner) (*domain.Module, error) {
	var m domain.Module
	if err := s.Scan(&m.Key, &m.Name, &m.Enabled, &m.Position, sharedSQLite.ScanTime(&m.UpdatedAt)); err != nil {
		return nil, err
	}
	return &m, nil
}

var _ domain.ModuleRepository = (*ModuleRepoSQLite)(nil)
