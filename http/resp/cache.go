package resp

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/relay/http/conditional"
	"golang.org/x/sync/singleflight"
)

var (
	_ MetadataCache = new(MemoryCache)
	_ MetadataCache = new(RedisCache)
)

// A MetadataCache remembers File metadata so entity tags are not recomputed on every request.
//
// Concurrent Fetches of one missing key compute it once; the rest wait for that result.
type MetadataCache interface {
	Fetch(ctx context.Context, key string, compute func() (conditional.Metadata, error)) (conditional.Metadata, error)
}

type memoryEntry struct {
	meta conditional.Metadata
	at   time.Time
}

// A MemoryCache keeps metadata in process memory.
//
// Server restarts reset a MemoryCache.
type MemoryCache struct {
	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]memoryEntry
	group   singleflight.Group
	now     func() time.Time
}

// NewMemoryCache constructs a MemoryCache holding entries for ttl.
// A ttl of zero or less holds entries until the process exits.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

// Fetch returns the metadata cached under key, calling compute to fill it when missing or stale.
//
// For each computation, stale entries are evicted.
func (c *MemoryCache) Fetch(ctx context.Context, key string, compute func() (conditional.Metadata, error)) (conditional.Metadata, error) {
	if meta, ok := c.get(key); ok {
		return meta, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if meta, ok := c.get(key); ok {
			return meta, nil
		}

		meta, err := compute()
		if err != nil {
			return conditional.Metadata{}, err
		}

		c.set(key, meta)
		return meta, nil
	})
	if err != nil {
		return conditional.Metadata{}, err
	}

	return v.(conditional.Metadata), nil
}

func (c *MemoryCache) get(key string) (conditional.Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || c.stale(e) {
		return conditional.Metadata{}, false
	}

	return e.meta, true
}

func (c *MemoryCache) set(key string, meta conditional.Metadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, e := range c.entries {
		if c.stale(e) {
			delete(c.entries, k)
		}
	}

	c.entries[key] = memoryEntry{meta: meta, at: c.now()}
}

func (c *MemoryCache) stale(e memoryEntry) bool {
	return c.ttl > 0 && c.now().Sub(e.at) > c.ttl
}

// A RedisCache keeps metadata in a Redis backend shared between processes.
//
// A Redis failure falls back to computing metadata; it never fails a Fetch by itself.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	group  singleflight.Group
}

// NewRedisCache constructs a RedisCache with the options passed in.
func NewRedisCache(opts *redis.Options, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(opts), ttl)
}

// NewRedisCacheWithClient constructs a RedisCache using an existing client.
func NewRedisCacheWithClient(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "relay:metadata:"}
}

type redisMetadata struct {
	ETag         string    `json:"etag"`
	LastModified time.Time `json:"lastModified"`
	Size         uint64    `json:"size"`
}

// Fetch returns the metadata stored under key, calling compute and storing the result when missing.
func (c *RedisCache) Fetch(ctx context.Context, key string, compute func() (conditional.Metadata, error)) (conditional.Metadata, error) {
	v, err, _ := c.group.Do(key, func() (any, error) {
		if meta, ok := c.get(ctx, key); ok {
			return meta, nil
		}

		meta, err := compute()
		if err != nil {
			return conditional.Metadata{}, err
		}

		c.set(ctx, key, meta)
		return meta, nil
	})
	if err != nil {
		return conditional.Metadata{}, err
	}

	return v.(conditional.Metadata), nil
}

func (c *RedisCache) get(ctx context.Context, key string) (conditional.Metadata, bool) {
	select {
	case <-ctx.Done():
		return conditional.Metadata{}, false
	default:
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			return conditional.Metadata{}, false
		}

		var rm redisMetadata
		if err := json.Unmarshal(b, &rm); err != nil {
			return conditional.Metadata{}, false
		}

		return conditional.Metadata{ETag: rm.ETag, LastModified: rm.LastModified, Size: rm.Size}, true
	}
}

func (c *RedisCache) set(ctx context.Context, key string, meta conditional.Metadata) {
	select {
	case <-ctx.Done():
		return
	default:
		b, err := json.Marshal(redisMetadata{ETag: meta.ETag, LastModified: meta.LastModified, Size: meta.Size})
		if err != nil {
			return
		}

		c.client.Set(ctx, c.prefix+key, b, c.ttl)
	}
}
