package events

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// MessageWriter es la parte de *kafka.Writer que usamos.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaEventStore usa un topic como log append-only. La clave es el id del
// agregado, así Kafka conserva el orden dentro de cada agregado.
type KafkaEventStore struct {
	writer MessageWriter
	log    *zap.Logger
}

func NewKafkaEventStore(writer MessageWriter, log *zap.Logger) *KafkaEventStore {
	return &KafkaEventStore{writer: writer, log: log}
}

func (s *KafkaEventStore) Store(ctx context.Context, record sharedEvents.Record) error {
	msg := kafka.Message{
		Key:   []byte(record.AggregateID),
		Value: record.Data,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(record.EventID)},
			{Key: "event_type", Value: []byte(record.EventType)},
			{Key: "aggregate_type", Value: []byte(record.AggregateType)},
		},
		Time: record.OccurredAt,
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.log.Error("Error writing event to Kafka",
			zap.String("event_id", record.EventID), zap.Error(err))
		return err
	}

	s.log.Debug("Event appended to Kafka", zap.String("event_id", record.EventID))
	return nil
}

// Verificación estática
var _ sharedEvents.EventStore = (*KafkaEventStore)(nil)
