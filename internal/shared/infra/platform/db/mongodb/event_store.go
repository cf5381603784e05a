package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

// EventStoreMongoDB guarda cada evento como un documento de la colección domain_events.
type EventStoreMongoDB struct {
	coll *mongo.Collection
}

func NewEventStoreMongoDB(client *mongo.Client, dbName string) *EventStoreMongoDB {
	return &EventStoreMongoDB{coll: client.Database(dbName).Collection("domain_events")}
}

// mongoEvent mapea los documentos de la colección.
type mongoEvent struct {
	ID            string    `bson:"_id"`
	AggregateType string    `bson:"aggregateType"`
	AggregateID   string    `bson:"aggregateId"`
	EventType     string    `bson:"eventType"`
	Payload       string    `bson:"payload"`
	OccurredAt    time.Time `bson:"occurredAt"`
	Version       int       `bson:"version"`
}

// InitSchema crea el índice por agregado.
func (s *EventStoreMongoDB) InitSchema(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "aggregateId", Value: 1}, {Key: "occurredAt", Value: 1}},
	})
	return err
}

// Store inserta el documento; _id es el event_id, así que un duplicado falla.
func (s *EventStoreMongoDB) Store(ctx context.Context, r sharedEvents.Record) error {
	_, err := s.coll.InsertOne(ctx, mongoEvent{
		ID:            r.EventID,
		AggregateType: r.AggregateType,
		AggregateID:   r.AggregateID,
		EventType:     r.EventType,
		Payload:       string(r.Data),
		OccurredAt:    r.OccurredAt,
		Version:       r.Version,
	})
	if err != nil {
		return fmt.Errorf("mongo insert event %s: %w", r.EventID, err)
	}
	return nil
}

func (s *EventStoreMongoDB) ListByAggregate(ctx context.Context, aggregateID string) ([]sharedEvents.Record, error) {
	filter := bson.M{"aggregateId": aggregateID}
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}})

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []sharedEvents.Record
	for cursor.Next(ctx) {
		var me mongoEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, err
		}
		records = append(records, fromMongoEvent(&me))
	}
	return records, cursor.Err()
}

func fromMongoEvent(me *mongoEvent) sharedEvents.Record {
	return sharedEvents.Record{
		EventID:       me.ID,
		EventType:     me.EventType,
		AggregateID:   me.AggregateID,
		AggregateType: me.AggregateType,
		OccurredAt:    me.OccurredAt.UTC(),
		Version:       me.Version,
		Data:          []byte(me.Payload),
	}
}

// Verificación en tiempo de compilación.
var _ sharedEvents.EventStore = (*EventStoreMongoDB)(nil)
var _ sharedEvents.EventHistory = (*EventStoreMongoDB)(nil)
