package ports

import (
	"context"
	"time"
)

// Cache define el puerto de salida para cachés de lectura (catálogos, directorio de empresas).
// Los valores se serializan; Get decodifica en dst y devuelve false si la clave no existe o expiró.
// Adaptadores: memoria (go-cache) y Redis.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
