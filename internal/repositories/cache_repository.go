package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface abstrae el caché de sesiones para que los
// servicios no dependan del cliente de Redis.
type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
