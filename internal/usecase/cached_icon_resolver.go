package usecase

import (
	"context"
	"log"
	"time"

	"github.com/plateup/backend/internal/domain"
)

// MaxCachedNameLength is the longest normalized name, in bytes, whose
// resolution is stored. Longer names are resolved without touching the cache.
const MaxCachedNameLength = 128

// CachedIconResolver memoizes resolutions by normalized food name.
// Resolution is pure, so a cached answer is always the answer the
// wrapped resolver would give.
type CachedIconResolver struct {
	next  domain.IconResolver
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewCachedIconResolver wraps next with cache. A zero ttl defaults to 24h.
func NewCachedIconResolver(next domain.IconResolver, cache domain.CacheRepository, ttl time.Duration) *CachedIconResolver {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedIconResolver{next: next, cache: cache, ttl: ttl}
}

// Resolve returns the glyph for foodName
func (r *CachedIconResolver) Resolve(foodName string) domain.Glyph {
	return r.Explain(foodName).Icon
}

// Explain returns the cached resolution for foodName, resolving and storing it on a miss
func (r *CachedIconResolver) Explain(foodName string) domain.Resolution {
	normalized := NormalizeFoodName(foodName)
	if len(normalized) > MaxCachedNameLength {
		return r.next.Explain(foodName)
	}

	ctx := context.Background()
	key := iconCacheKey(normalized)

	if cached, err := r.getFromCache(ctx, key); err == nil {
		cached.Input = foodName
		return cached
	}

	res := r.next.Explain(foodName)
	if err := r.cache.Set(ctx, key, res, r.ttl); err != nil {
		log.Printf("[CACHE] failed to store %q: %v", key, err)
	}
	return res
}

// generateIconCacheKey creates a cache key from the normalized food name.
// Format: "icon:{normalized_name}"
func generateIconCacheKey(foodName string) string {
	return iconCacheKey(NormalizeFoodName(foodName))
}

func iconCacheKey(normalized string) string {
	return "icon:" + normalized
}

// getFromCache retrieves a resolution from cache
func (r *CachedIconResolver) getFromCache(ctx context.Context, key string) (domain.Resolution, error) {
	value, err := r.cache.Get(ctx, key)
	if err != nil {
		return domain.Resolution{}, err
	}

	switch v := value.(type) {
	case domain.Resolution:
		return v, nil
	case *domain.Resolution:
		return *v, nil
	case map[string]interface{}:
		// JSON-backed caches hand values back as generic maps
		return mapToResolution(v)
	default:
		return domain.Resolution{}, domain.ErrCacheMiss
	}
}

// mapToResolution converts a map (from JSON cache) to a Resolution
func mapToResolution(data map[string]interface{}) (domain.Resolution, error) {
	icon, ok := data["icon"].(string)
	if !ok || icon == "" {
		return domain.Resolution{}, domain.ErrCacheMiss
	}

	res := domain.Resolution{Icon: domain.Glyph(icon)}
	if v, ok := data["normalized"].(string); ok {
		res.Normalized = v
	}
	if v, ok := data["match"].(string); ok {
		res.Match = domain.MatchKind(v)
	}
	if v, ok := data["keyword"].(string); ok {
		res.Keyword = v
	}
	if v, ok := data["category"].(string); ok {
		res.Category = v
	}
	return res, nil
}
