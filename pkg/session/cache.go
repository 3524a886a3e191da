package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps the serialized profile of a token between requests so
// that every page does not cost a round trip to /auth/profile.
type ProfileCache interface {
	Get(ctx context.Context, token string) ([]byte, bool, error)
	Set(ctx context.Context, token string, value []byte) error
	Delete(ctx context.Context, token string) error
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "portal:profile:" + hex.EncodeToString(sum[:])
}

// NewProfileCache builds the cache named by storage: memory, redis or none.
func NewProfileCache(storage, redisURL string, ttl time.Duration) (ProfileCache, error) {
	switch storage {
	case "", "memory":
		return NewMemoryCache(ttl), nil
	case "redis":
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			opts = &redis.Options{Addr: redisURL}
		}
		return NewRedisCache(redis.NewClient(opts), ttl), nil
	case "none":
		return NopCache{}, nil
	default:
		return nil, errors.Errorf("unknown profile cache storage %q", storage)
	}
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: map[string]memoryEntry{},
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, token string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(token)
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.After(c.now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, token string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if !e.expires.After(now) {
			delete(c.entries, k)
		}
	}
	c.entries[cacheKey(token)] = memoryEntry{value: value, expires: now.Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(token))
	return nil
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, cacheKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get profile")
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, token string, value []byte) error {
	return errors.Wrap(c.client.Set(ctx, cacheKey(token), value, c.ttl).Err(), "redis set profile")
}

func (c *RedisCache) Delete(ctx context.Context, token string) error {
	return errors.Wrap(c.client.Del(ctx, cacheKey(token)).Err(), "redis delete profile")
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NopCache) Set(context.Context, string, []byte) error         { return nil }
func (NopCache) Delete(context.Context, string) error              { return nil }
