package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// EventStoreSQLite guarda los eventos en una tabla append-only.
type EventStoreSQLite struct {
	db *sql.DB
}

func NewEventStoreSQLite(db *sql.DB) *EventStoreSQLite {
	return &EventStoreSQLite{db: db}
}

// InitSchema crea la tabla domain_events si no existe.
func (s *EventStoreSQLite) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS domain_events (
            seq            INTEGER PRIMARY KEY AUTOINCREMENT,
            event_id       TEXT NOT NULL UNIQUE,
            aggregate_type TEXT NOT NULL,
            aggregate_id   TEXT NOT NULL,
            event_type     TEXT NOT NULL,
            payload        TEXT NOT NULL,
            occurred_at    TEXT NOT NULL,
            version        INTEGER NOT NULL
        )
    `)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_domain_events_aggregate ON domain_events (aggregate_id, seq)`)
	return err
}

// Store sólo inserta; un event_id repetido falla por la restricción UNIQUE.
func (s *EventStoreSQLite) Store(ctx context.Context, r sharedEvents.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO domain_events (event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.EventID, r.AggregateType, r.AggregateID, r.EventType, string(r.Data),
		sharedEvents.FormatOccurredAt(r.OccurredAt), r.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert domain event %s: %w", r.EventID, err)
	}
	return nil
}

// ListByAggregate devuelve el historial de un agregado en orden de inserción.
func (s *EventStoreSQLite) ListByAggregate(ctx context.Context, aggregateID string) ([]sharedEvents.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version
         FROM domain_events
         WHERE aggregate_id = ?
         ORDER BY seq`, aggregateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []sharedEvents.Record
	for rows.Next() {
		var r sharedEvents.Record
		var payload, occurredAt string
		if err := rows.Scan(&r.EventID, &r.AggregateType, &r.AggregateID, &r.EventType, &payload, &occurredAt, &r.Version); err != nil {
			return nil, err
		}
		r.Data = []byte(payload)
		if r.OccurredAt, err = sharedEvents.ParseOccurredAt(occurredAt); err != nil {
			return nil, fmt.Errorf("invalid occurred_at in event %s: %w", r.EventID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Verificación en tiempo de compilación.
var _ sharedEvents.EventStore = (*EventStoreSQLite)(nil)
var _ sharedEvents.EventHistory = (*EventStoreSQLite)(nil)
