package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/davicafu/infopanel/internal/config"
	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	infraEvents "github.com/davicafu/infopanel/internal/shared/infra/events"
	sharedBus "github.com/davicafu/infopanel/internal/shared/infra/platform/bus"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/cache"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/db/clickhouse"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/db/mongodb"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/db/postgres"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/health"
	sharedSQLite "github.com/davicafu/infopanel/internal/shared/infra/platform/db/sqlite"
)

// eventStore agrupa el store elegido, su historial (si se puede leer) y su cierre.
type eventStore struct {
	Store   sharedEvents.EventStore
	History sharedEvents.EventHistory
	close   func()
}

func (s eventStore) Close() {
	if s.close != nil {
		s.close()
	}
}

// historyOf devuelve nil (interfaz nil) si el store no admite lectura.
func historyOf(store sharedEvents.EventStore) sharedEvents.EventHistory {
	if h, ok := store.(sharedEvents.EventHistory); ok {
		return h
	}
	return nil
}

func openEventStore(ctx context.Context, cfg *config.Config, db *sql.DB, log *zap.Logger) (eventStore, error) {
	switch cfg.EventStore {
	case config.StoreSQLite:
		s := sharedSQLite.NewEventStoreSQLite(db)
		if err := s.InitSchema(ctx); err != nil {
			return eventStore{}, err
		}
		return eventStore{Store: s, History: s}, nil

	case config.StorePostgres:
		pg, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return eventStore{}, err
		}
		if err := pg.PingContext(ctx); err != nil {
			pg.Close()
			return eventStore{}, fmt.Errorf("could not ping postgres: %w", err)
		}
		s := postgres.NewEventStorePostgres(pg)
		if err := s.InitSchema(ctx); err != nil {
			pg.Close()
			return eventStore{}, err
		}
		return eventStore{Store: s, History: s, close: func() { pg.Close() }}, nil

	case config.StoreMongoDB:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return eventStore{}, err
		}
		s := mongodb.NewEventStoreMongoDB(client, cfg.MongoDB)
		if err := s.InitSchema(ctx); err != nil {
			client.Disconnect(ctx)
			return eventStore{}, err
		}
		return eventStore{Store: s, History: s, close: func() { client.Disconnect(context.Background()) }}, nil

	case config.StoreKafka:
		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaEventsTopic,
			Balancer:     &kafka.Hash{}, // misma clave (agregado) => misma partición
			RequiredAcks: kafka.RequireAll,
		}
		s := infraEvents.NewKafkaEventStore(writer, log)
		return eventStore{Store: s, History: historyOf(s), close: func() { writer.Close() }}, nil

	case config.StoreClickHouse:
		ch, err := clickhouse.Open(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			return eventStore{}, err
		}
		s := clickhouse.NewEventStoreClickHouse(ch)
		if err := s.InitSchema(ctx); err != nil {
			ch.Close()
			return eventStore{}, err
		}
		return eventStore{Store: s, History: s, close: func() { ch.Close() }}, nil
	}
	return eventStore{}, fmt.Errorf("unknown EVENT_STORE %q", cfg.EventStore)
}

// broadcaster agrupa el broadcaster elegido y el driver que realmente quedó activo.
type broadcaster struct {
	Broadcaster sharedBus.Broadcaster
	Driver      string
	Check       health.Check
	close       func()
}

func (b broadcaster) Close() {
	if b.close != nil {
		b.close()
	}
}

// openBroadcaster usa Redis si responde; si no, cae al bus en memoria para
// que el panel siga funcionando sin notificaciones entre procesos.
func openBroadcaster(ctx context.Context, cfg *config.Config, log *zap.Logger) broadcaster {
	if cfg.BroadcastDriver == config.DriverRedis {
		conns := infraEvents.NewRedisConnectionManager(infraEvents.RedisOptions{
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisMaxRequests, log)

		pingCtx, cancel := context.WithTimeout(ctx, cfg.RedisPingTimeout)
		err := conns.Do(pingCtx, cfg.RedisHost, cfg.RedisPort, func(*redis.Client) error { return nil })
		cancel()
		if err == nil {
			log.Info("✅ Redis conectado, broadcast habilitado",
				zap.String("addr", cfg.RedisHost+":"+strconv.Itoa(cfg.RedisPort)))
			return broadcaster{
				Broadcaster: infraEvents.NewRedisBroadcaster(conns, cfg.RedisHost, cfg.RedisPort, log),
				Driver:      config.DriverRedis,
				Check: func(ctx context.Context) error {
					return conns.Do(ctx, cfg.RedisHost, cfg.RedisPort, func(*redis.Client) error { return nil })
				},
				close: conns.Close,
			}
		}
		conns.Close()
		log.Warn("⚠️ Redis no disponible, broadcast en memoria", zap.Error(err))
	}

	log.Info("⚡️ Usando broadcast en memoria (canales de Go)")
	return broadcaster{Broadcaster: infraEvents.NewInMemoryBroadcaster(), Driver: config.DriverMemory}
}

// moduleCache agrupa la caché de lectura y su cierre.
type moduleCache struct {
	Cache cache.Cache
	close func()
}

func (m moduleCache) Close() {
	if m.close != nil {
		m.close()
	}
}

func openCache(ctx context.Context, cfg *config.Config, log *zap.Logger) moduleCache {
	switch cfg.CacheDriver {
	case config.DriverNone:
		return moduleCache{}
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + strconv.Itoa(cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, cfg.RedisPingTimeout)
		defer cancel()
		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			log.Info("✅ Redis conectado, cache habilitado")
			return moduleCache{Cache: cache.NewRedisCache(rdb), close: func() { rdb.Close() }}
		}
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		rdb.Close()
	}
	mem := cache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	return moduleCache{Cache: mem, close: mem.Stop}
}
