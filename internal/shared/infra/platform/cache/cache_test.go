package cache

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type item struct {
	Key  string `json:"key"`
	Rank int    `json:"rank"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Minute, time.Hour)
	defer c.Stop()

	var got item
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "k", item{Key: "weather", Rank: 1}, 0))
	hit, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, item{Key: "weather", Rank: 1}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	hit, _ = c.Get(ctx, "k", &got)
	assert.False(t, hit)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(10*time.Millisecond, time.Hour)
	defer c.Stop()
	require.NoError(t, c.Set(ctx, "k", 1, 0))

	time.Sleep(20 * time.Millisecond)

	var v int
	hit, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
}

// recordingCache cuenta las llamadas hechas desde los helpers asíncronos.
type recordingCache struct {
	mu      sync.Mutex
	sets    int
	deletes int
	err     error
	done    chan struct{}
}

func (r *recordingCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (r *recordingCache) Set(ctx context.Context, key string, val interface{}, ttl int) error {
	r.mu.Lock()
	r.sets++
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *recordingCache) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	r.deletes++
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func TestAsyncCacheSet(t *testing.T) {
	rc := &recordingCache{err: errors.New("boom"), done: make(chan struct{}, 1)}

	AsyncCacheSet(context.Background(), rc, "k", 1, 10, nil, zap.NewNop())
	<-rc.done

	rc.mu.Lock()
	assert.Equal(t, 1, rc.sets)
	assert.Zero(t, rc.deletes, "un Set fallido no intenta borrar")
	rc.mu.Unlock()

	// Con caché nil no hace nada
	AsyncCacheSet(context.Background(), nil, "k", 1, 10, nil, zap.NewNop())
}

func TestAsyncCacheSet_StaleValueIsRemoved(t *testing.T) {
	rc := &recordingCache{done: make(chan struct{}, 2)}

	AsyncCacheSet(context.Background(), rc, "k", 1, 10, func() bool { return true }, zap.NewNop())
	<-rc.done
	<-rc.done

	rc.mu.Lock()
	defer rc.mu.Unlock()
	assert.Equal(t, 1, rc.sets)
	assert.Equal(t, 1, rc.deletes)
}

func TestRedisCache_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR no está configurada, saltando test de integración con Redis")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	c := NewRedisCache(client)

	require.NoError(t, c.Set(ctx, "infopanel:test", item{Key: "tram"}, 5))
	var got item
	hit, err := c.Get(ctx, "infopanel:test", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "tram", got.Key)
	require.NoError(t, c.Delete(ctx, "infopanel:test"))
}
