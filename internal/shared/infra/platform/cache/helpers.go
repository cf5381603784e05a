package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AsyncCacheSet actualiza caché en background sin bloquear. Si stale no es nil
// y devuelve true tras escribir, la clave se borra: el valor ya estaba superado.
func AsyncCacheSet(ctx context.Context, cache Cache, key string, value interface{}, ttl int, stale func() bool, log *zap.Logger) {
	if cache == nil {
		return
	}

	go func() {
		// Dispara y olvida: no depende del contexto de la petición.
		cacheCtx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		if err := cache.Set(cacheCtx, key, value, ttl); err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
			return
		}
		if stale != nil && stale() {
			if err := cache.Delete(cacheCtx, key); err != nil {
				log.Warn("Stale cache entry could not be removed",
					zap.String("key", key),
					zap.Error(err))
			}
		}
	}()
}
