package utils

import (
	"context"
	"errors"
	"time"
)

// Retry ejecuta una función con reintentos configurables
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	return RetryUnless(ctx, attempts, delay, fn)
}

// RetryUnless es como Retry, pero corta en cuanto fn devuelve uno de los
// errores definitivos (comparados con errors.Is). Un "not found" no mejora
// reintentando.
func RetryUnless(ctx context.Context, attempts int, delay time.Duration, fn func() error, final ...error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		for _, f := range final {
			if errors.Is(err, f) {
				return err
			}
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
			// espera antes del siguiente intento
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
