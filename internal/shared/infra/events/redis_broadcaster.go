package events

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	sharedBus "github.com/davicafu/infopanel/internal/shared/infra/platform/bus"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/pool"
)

// RedisOptions son las credenciales comunes a todas las conexiones.
type RedisOptions struct {
	Password string
	DB       int
}

// RedisHooks conecta el manager con go-redis. El cliente de go-redis es
// perezoso, así que el PING del manager es el que realmente conecta.
func RedisHooks(opts RedisOptions) pool.Hooks[*redis.Client] {
	return pool.Hooks[*redis.Client]{
		Create: func(ctx context.Context, host string, port int) (*redis.Client, error) {
			return redis.NewClient(&redis.Options{
				Addr:       net.JoinHostPort(host, strconv.Itoa(port)),
				Password:   opts.Password,
				DB:         opts.DB,
				PoolSize:   1,
				MaxRetries: -1, // sin reintentos: la política es de quien llama
			}), nil
		},
		Ping: func(ctx context.Context, c *redis.Client) error {
			return c.Ping(ctx).Err()
		},
		Close: func(c *redis.Client) error {
			return c.Close()
		},
	}
}

// NewRedisConnectionManager se crea una vez por proceso en main.
func NewRedisConnectionManager(opts RedisOptions, maxRequests int, log *zap.Logger) *pool.Manager[*redis.Client] {
	return pool.NewManager(RedisHooks(opts), maxRequests, log)
}

// RedisBroadcaster publica con PUBLISH usando la conexión del manager.
type RedisBroadcaster struct {
	conns *pool.Manager[*redis.Client]
	host  string
	port  int
	log   *zap.Logger
}

func NewRedisBroadcaster(conns *pool.Manager[*redis.Client], host string, port int, log *zap.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{conns: conns, host: host, port: port, log: log}
}

// Publish revalida la conexión en cada llamada y la retiene mientras
// publica; los errores de creación llegan como pool.ErrConnectionCreationFailed.
func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, message []byte) error {
	return b.conns.Do(ctx, b.host, b.port, func(conn *redis.Client) error {
		receivers, err := conn.Publish(ctx, channel, message).Result()
		if err != nil {
			return fmt.Errorf("%w: redis publish on %q: %v", sharedEvents.ErrBroadcastFailed, channel, err)
		}

		b.log.Debug("Message published to Redis",
			zap.String("channel", channel), zap.Int64("receivers", receivers))
		return nil
	})
}

// Verificación estática
var _ sharedBus.Broadcaster = (*RedisBroadcaster)(nil)
