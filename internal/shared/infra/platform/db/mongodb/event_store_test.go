package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

func TestFromMongoEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	me := &mongoEvent{
		ID:            "e-1",
		AggregateType: "Countdown",
		AggregateID:   "c-1",
		EventType:     "countdown.updated",
		Payload:       `{"eventId":"e-1"}`,
		OccurredAt:    at,
		Version:       1,
	}

	r := fromMongoEvent(me)

	assert.Equal(t, "e-1", r.EventID)
	assert.Equal(t, "countdown.updated", r.EventType)
	assert.Equal(t, `{"eventId":"e-1"}`, string(r.Data))
	assert.True(t, at.Equal(r.OccurredAt))
}

func TestEventStoreMongoDB_StoreAndList(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI no está configurada, saltando test de integración con MongoDB")
	}
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	store := NewEventStoreMongoDB(client, "infopanel_test")
	require.NoError(t, store.InitSchema(ctx))

	aggregateID := uuid.NewString()
	rec := sharedEvents.Record{
		EventID:       uuid.NewString(),
		EventType:     "announcement.created",
		AggregateID:   aggregateID,
		AggregateType: "Announcement",
		OccurredAt:    time.Now().UTC().Truncate(time.Millisecond),
		Version:       1,
		Data:          []byte(`{"eventType":"announcement.created"}`),
	}

	require.NoError(t, store.Store(ctx, rec))
	assert.Error(t, store.Store(ctx, rec))

	got, err := store.ListByAggregate(ctx, aggregateID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.EventID, got[0].EventID)
}
