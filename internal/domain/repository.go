package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IconResolver maps a free-text food name to a glyph. Implementations
// must be total: every input, including "", yields a non-empty glyph.
type IconResolver interface {
	Resolve(foodName string) Glyph
	Explain(foodName string) Resolution
}
