// Package cache es la caché de lectura de la aplicación (listado de módulos).
// Los adapters serializan a JSON, así cualquier tipo exportable se puede cachear.
package cache

import "context"

// Cache es una caché clave-valor con TTL.
//
// Get rellena dest (un puntero) y devuelve true en un acierto. Un fallo de
// la caché nunca debe romper un caso de uso: quien llama lo trata como miss.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Set guarda val durante ttlSecs segundos. Con ttlSecs <= 0 manda el adapter:
	// en memoria usa su TTL por defecto y en Redis la clave no caduca.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error
	Delete(ctx context.Context, key string) error
}
