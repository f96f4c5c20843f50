package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/plateup/backend/internal/domain"
)

// DefaultCleanupInterval is how often expired entries are swept
const DefaultCleanupInterval = 10 * time.Minute

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	Value      interface{}
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support
type MemoryCache struct {
	data       map[string]cacheItem
	mutex      sync.RWMutex
	maxEntries int

	stop     chan struct{}
	stopOnce sync.Once
}

// MemoryCacheOptions tunes a MemoryCache. Zero values select the defaults.
type MemoryCacheOptions struct {
	// CleanupInterval is how often expired entries are swept
	CleanupInterval time.Duration
	// MaxEntries caps the number of stored keys; 0 means unbounded
	MaxEntries int
}

// NewMemoryCache creates a new unbounded in-memory cache swept every DefaultCleanupInterval
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithOptions(MemoryCacheOptions{})
}

// NewMemoryCacheWithInterval creates a cache whose expired entries are removed
// every interval. Call Close to stop the sweeper.
func NewMemoryCacheWithInterval(interval time.Duration) *MemoryCache {
	return NewMemoryCacheWithOptions(MemoryCacheOptions{CleanupInterval: interval})
}

// NewMemoryCacheWithOptions creates a cache configured by opts. When
// MaxEntries is reached, inserting a new key first drops expired entries
// and then, if still full, evicts the entry closest to expiry.
func NewMemoryCacheWithOptions(opts MemoryCacheOptions) *MemoryCache {
	interval := opts.CleanupInterval
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}

	cache := &MemoryCache{
		data:       make(map[string]cacheItem),
		maxEntries: max(opts.MaxEntries, 0),
		stop:       make(chan struct{}),
	}

	go cache.cleanupExpired(interval)

	return cache
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.Expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.Value, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Round-trip through JSON so stored values have the same shape a
	// networked cache would return.
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var storedValue interface{}
	if err := json.Unmarshal(jsonData, &storedValue); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists {
		c.makeRoomLocked(time.Now())
	}

	c.data[key] = cacheItem{
		Value:      storedValue,
		Expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	return !time.Now().After(item.Expiration), nil
}

// Close stops the background sweeper. It is safe to call more than once.
func (c *MemoryCache) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *MemoryCache) removeExpired(now time.Time) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.removeExpiredLocked(now)
}

func (c *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// makeRoomLocked frees one slot when the cache is at capacity.
// Callers must hold the write lock.
func (c *MemoryCache) makeRoomLocked(now time.Time) {
	if c.maxEntries == 0 || len(c.data) < c.maxEntries {
		return
	}
	if c.removeExpiredLocked(now) > 0 {
		return
	}

	var oldestKey string
	var oldest time.Time
	found := false
	for key, item := range c.data {
		if !found || item.Expiration.Before(oldest) {
			oldestKey, oldest, found = key, item.Expiration, true
		}
	}
	delete(c.data, oldestKey)
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
