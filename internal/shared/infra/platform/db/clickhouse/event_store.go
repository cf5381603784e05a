package clickhouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// EventStoreClickHouse vuelca los eventos a una tabla MergeTree para analítica.
// ClickHouse no tiene restricciones UNIQUE: la unicidad del event_id no se comprueba aquí.
type EventStoreClickHouse struct {
	db *sql.DB
}

// Open abre la conexión y comprueba que responde.
func Open(addr, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

func NewEventStoreClickHouse(db *sql.DB) *EventStoreClickHouse {
	return &EventStoreClickHouse{db: db}
}

// InitSchema crea events_log particionada por mes.
func (s *EventStoreClickHouse) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS events_log (
			event_id       String,
			aggregate_type LowCardinality(String),
			aggregate_id   String,
			event_type     LowCardinality(String),
			payload        String,
			occurred_at    DateTime64(3),
			version        UInt16
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(occurred_at)
		ORDER BY (aggregate_id, occurred_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *EventStoreClickHouse) Store(ctx context.Context, r sharedEvents.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO events_log (event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx,
		r.EventID, r.AggregateType, r.AggregateID, r.EventType, string(r.Data), r.OccurredAt, uint16(r.Version),
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to exec statement for event %s: %w", r.EventID, err)
	}
	return tx.Commit()
}

func (s *EventStoreClickHouse) ListByAggregate(ctx context.Context, aggregateID string) ([]sharedEvents.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, version
		FROM events_log
		WHERE aggregate_id = ?
		ORDER BY occurred_at
	`, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []sharedEvents.Record
	for rows.Next() {
		var r sharedEvents.Record
		var payload string
		var version uint16
		if err := rows.Scan(&r.EventID, &r.AggregateType, &r.AggregateID, &r.EventType, &payload, &r.OccurredAt, &version); err != nil {
			return nil, err
		}
		r.Data = []byte(payload)
		r.Version = int(version)
		r.OccurredAt = r.OccurredAt.UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// Verificación estática de la interfaz.
var _ sharedEvents.EventStore = (*EventStoreClickHouse)(nil)
var _ sharedEvents.EventHistory = (*EventStoreClickHouse)(nil)
