package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // Driver de PostgreSQL

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// EventStorePostgres implementa EventStore sobre PostgreSQL (payload JSONB).
type EventStorePostgres struct {
	db *sql.DB
}

func NewEventStorePostgres(db *sql.DB) *EventStorePostgres {
	return &EventStorePostgres{db: db}
}

// InitSchema crea la tabla si no existe.
func (s *EventStorePostgres) InitSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS domain_events (
			seq            BIGSERIAL PRIMARY KEY,
			event_id       UUID NOT NULL UNIQUE,
			aggregate_type TEXT NOT NULL,
			aggregate_id   TEXT NOT NULL,
			event_type     TEXT NOT NULL,
			payload        JSONB NOT NULL,
			occurred_at    TIMESTAMP WITH TIME ZONE NOT NULL,
			version        INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_domain_events_aggregate ON domain_events (aggregate_id, seq);
	`)
	return err
}

func (s *EventStorePostgres) Store(ctx context.Context, r sharedEvents.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO domain_events (event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.EventID, r.AggregateType, r.AggregateID, r.EventType, r.Data, r.OccurredAt, r.Version,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *EventStorePostgres) ListByAggregate(ctx context.Context, aggregateID string) ([]sharedEvents.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version
		 FROM domain_events WHERE aggregate_id = $1 ORDER BY seq`, aggregateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []sharedEvents.Record
	for rows.Next() {
		var r sharedEvents.Record
		if err := rows.Scan(&r.EventID, &r.AggregateType, &r.AggregateID, &r.EventType, &r.Data, &r.OccurredAt, &r.Version); err != nil {
			return nil, err
		}
		r.OccurredAt = r.OccurredAt.UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// Verificación en tiempo de compilación.
var _ sharedEvents.EventStore = (*EventStorePostgres)(nil)
var _ sharedEvents.EventHistory = (*EventStorePostgres)(nil)
