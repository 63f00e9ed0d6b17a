package bootstrap

import (
	"context"
	"time"

	"github.com/jhoicas/tacom-api/internal/application/ports"
	"github.com/jhoicas/tacom-api/internal/infrastructure/cache"
	"github.com/jhoicas/tacom-api/pkg/config"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

// OpenCache crea la caché de catálogos según CACHE_DRIVER. El cierre es no-op para memoria.
func OpenCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.Cache, func(), error) {
	ttl := CacheTTL(cfg)
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemoryCache(ttl, 2*ttl), func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	if log != nil {
		log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("caché Redis")
	}
	return cache.NewRedisCache(client, cfg.App.Name+":"), func() { _ = client.Close() }, nil
}

// CacheTTL duración de las entradas de catálogo.
func CacheTTL(cfg *config.Config) time.Duration {
	if cfg.Cache.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(cfg.Cache.TTLSeconds) * time.Second
}
