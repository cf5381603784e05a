package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	config "github.com/davicafu/infopanel/internal/config"
	infraEvents "github.com/davicafu/infopanel/internal/shared/infra/events"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/cache"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/infopanel/tests/mocks"
)

func TestOpenEventStore_SQLiteHasHistory(t *testing.T) {
	ctx := context.Background()
	db, err := sharedSQLite.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := openEventStore(ctx, &config.Config{EventStore: config.StoreSQLite}, db, zap.NewNop())

	require.NoError(t, err)
	defer store.Close()
	assert.NotNil(t, store.Store)
	assert.NotNil(t, store.History)
}

func TestOpenEventStore_UnknownDriver(t *testing.T) {
	_, err := openEventStore(context.Background(), &config.Config{EventStore: "cassandra"}, nil, zap.NewNop())

	assert.ErrorContains(t, err, "cassandra")
}

func TestHistoryOf_WriteOnlyStore(t *testing.T) {
	kafkaStore := infraEvents.NewKafkaEventStore(nil, zap.NewNop())

	assert.Nil(t, historyOf(kafkaStore), "Kafka no permite leer el historial")
	assert.NotNil(t, historyOf(mocks.NewInMemoryEventStore()))
}

func TestOpenBroadcaster_FallsBackToMemory(t *testing.T) {
	cfg := &config.Config{
		BroadcastDriver:  config.DriverRedis,
		RedisHost:        "127.0.0.1",
		RedisPort:        1, // nadie escucha aquí
		RedisMaxRequests: 10,
		RedisPingTimeout: 200 * time.Millisecond,
	}

	b := openBroadcaster(context.Background(), cfg, zap.NewNop())
	defer b.Close()

	assert.Equal(t, config.DriverMemory, b.Driver)
	assert.IsType(t, &infraEvents.InMemoryBroadcaster{}, b.Broadcaster)
	assert.Nil(t, b.Check)
}

func TestOpenCache_Drivers(t *testing.T) {
	none := openCache(context.Background(), &config.Config{CacheDriver: config.DriverNone}, zap.NewNop())
	assert.Nil(t, none.Cache)
	none.Close()

	mem := openCache(context.Background(), &config.Config{CacheDriver: config.DriverMemory, CacheTTL: time.Minute}, zap.NewNop())
	defer mem.Close()
	assert.IsType(t, &cache.InMemoryCache{}, mem.Cache)
}
