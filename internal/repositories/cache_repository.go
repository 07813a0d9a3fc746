package repositories

import (
	"context"
	"time"
)

// CacheRepository defines the interface for cache operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, pattern string) error
}

// DefaultExpiration is the cache expiration applied when callers pass 0.
const DefaultExpiration = 24 * time.Hour
