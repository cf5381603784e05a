package events

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	"github.com/davicafu/infopanel/internal/shared/infra/platform/pool"
)

func TestInMemoryBroadcaster_FanOutPerChannel(t *testing.T) {
	b := NewInMemoryBroadcaster()
	subA := b.Subscribe("display", 4)
	subB := b.Subscribe("display", 4)
	other := b.Subscribe("other", 4)

	require.NoError(t, b.Publish(context.Background(), "display", []byte(`{"type":"modules_updated"}`)))

	msgA := <-subA
	msgB := <-subB
	assert.Equal(t, `{"type":"modules_updated"}`, string(msgA.Payload))
	assert.Equal(t, "display", msgB.Channel)
	assert.Empty(t, other)
}

func TestInMemoryBroadcaster_DropsWhenSubscriberIsFull(t *testing.T) {
	b := NewInMemoryBroadcaster()
	sub := b.Subscribe("display", 1)

	require.NoError(t, b.Publish(context.Background(), "display", []byte("1")))
	require.NoError(t, b.Publish(context.Background(), "display", []byte("2")))

	assert.Len(t, sub, 1)
	assert.Equal(t, "1", string((<-sub).Payload))
}

func TestInMemoryBroadcaster_CancelledContext(t *testing.T) {
	b := NewInMemoryBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Publish(ctx, "display", []byte("x")), context.Canceled)
}

func TestRedisBroadcaster_ConnectionCreationFailure(t *testing.T) {
	hooks := pool.Hooks[*redis.Client]{
		Create: func(ctx context.Context, host string, port int) (*redis.Client, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
		Ping:  func(ctx context.Context, c *redis.Client) error { return nil },
		Close: func(c *redis.Client) error { return nil },
	}
	conns := pool.NewManager(hooks, 10, zap.NewNop())
	b := NewRedisBroadcaster(conns, "localhost", 6379, zap.NewNop())

	err := b.Publish(context.Background(), "display", []byte("x"))

	assert.ErrorIs(t, err, pool.ErrConnectionCreationFailed)
}

func TestRedisBroadcaster_PublishFailureReleasesConnection(t *testing.T) {
	var clients []*redis.Client
	hooks := pool.Hooks[*redis.Client]{
		Create: func(ctx context.Context, host string, port int) (*redis.Client, error) {
			c := redis.NewClient(&redis.Options{
				Addr:        net.JoinHostPort(host, strconv.Itoa(port)),
				MaxRetries:  -1,
				DialTimeout: 100 * time.Millisecond,
			})
			clients = append(clients, c)
			return c, nil
		},
		Ping:  func(ctx context.Context, c *redis.Client) error { return nil },
		Close: func(c *redis.Client) error { return c.Close() },
	}
	conns := pool.NewManager(hooks, 1, zap.NewNop())
	defer conns.Close()
	// Nadie escucha en el puerto 1: el PUBLISH falla
	b := NewRedisBroadcaster(conns, "127.0.0.1", 1, zap.NewNop())

	for i := 0; i < 2; i++ {
		err := b.Publish(context.Background(), "display", []byte("x"))
		assert.ErrorIs(t, err, sharedEvents.ErrBroadcastFailed)
	}

	// El segundo uso supera el umbral y cierra la primera conexión, ya devuelta
	require.Len(t, clients, 2)
	assert.EqualError(t, clients[0].Ping(context.Background()).Err(), "redis: client is closed")
}

// Test de integración: sólo se ejecuta con un Redis real.
func TestRedisBroadcaster_PublishIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no está configurada, saltando test de integración con Redis")
	}
	ctx := context.Background()

	sub := redis.NewClient(&redis.Options{Addr: addr})
	defer sub.Close()
	ps := sub.Subscribe(ctx, "infopanel-test")
	defer ps.Close()
	_, err := ps.Receive(ctx)
	require.NoError(t, err)

	host, port := splitHostPort(t, addr)
	conns := NewRedisConnectionManager(RedisOptions{}, 2, zap.NewNop())
	defer conns.Close()
	b := NewRedisBroadcaster(conns, host, port, zap.NewNop())

	require.NoError(t, b.Publish(ctx, "infopanel-test", []byte(`{"type":"countdown_updated"}`)))

	select {
	case msg := <-ps.Channel():
		assert.Equal(t, `{"type":"countdown_updated"}`, msg.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó el mensaje publicado")
	}
}

func splitHostPort(t *testing.T, addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}
