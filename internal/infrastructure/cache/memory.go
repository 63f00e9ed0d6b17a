// Package cache implementa ports.Cache en memoria (go-cache) y en Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache caché local del proceso. Guarda los valores serializados en JSON
// para que Get devuelva copias y no punteros compartidos.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache crea la caché con expiración por defecto y limpieza periódica.
func NewMemoryCache(defaultTTL, cleanup time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanup)}
}

func (m *MemoryCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, found := m.store.Get(key)
	if !found {
		return false, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("cache: valor inesperado en %s", key)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("cache: decodificar %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: codificar %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, b, ttl)
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.store.Delete(k)
	}
	return nil
}
