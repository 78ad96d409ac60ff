// Package listcache кэширует списки записей, которые сервисы отдают целиком.
// Ошибки кэша не прерывают запрос: они логируются, а данные читаются из хранилища.
package listcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/adaso/internal/lib/sl"
)

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значения из кеша по ключам.
	Invalidate(ctx context.Context, keys ...string) error
}

// Load возвращает список из кэша по key, а при промахе загружает его через load
// и сохраняет. nil cache отключает кэширование.
func Load[T any](ctx context.Context, cache Cache, log *slog.Logger, key string,
	load func(context.Context) ([]*T, error)) ([]*T, error) {
	if cache == nil {
		return load(ctx)
	}

	var cached []*T
	found, err := cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("failed to read from cache", slog.String("key", key), sl.Err(err))
	}
	if found && err == nil {
		return cached, nil
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(ctx, key, items, 0); err != nil {
		log.Warn("failed to add to cache", slog.String("key", key), sl.Err(err))
	}
	return items, nil
}

// Drop удаляет ключи из кэша.
func Drop(ctx context.Context, cache Cache, log *slog.Logger, keys ...string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, keys...); err != nil {
		log.Warn("failed to remove from cache", slog.Any("keys", keys), sl.Err(err))
	}
}
