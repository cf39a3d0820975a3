package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	go_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix is prepended to every key written to a cache backend.
const KeyPrefix = "teenfaith-"

var _ KV = (*Cache)(nil)

// Cache is a KV backed by an eko/gocache store.
type Cache struct {
	cache  *cache.Cache[any]
	prefix string
	close  func() error
}

// NewMemory creates an in-process KV. Values never expire.
func NewMemory() *Cache {
	gocacheClient := gocache.New(gocache.NoExpiration, gocache.NoExpiration)
	gocacheStore := go_store.NewGoCache(gocacheClient)
	return &Cache{
		cache:  cache.New[any](gocacheStore),
		prefix: KeyPrefix,
		close:  func() error { return nil },
	}
}

// NewRedis creates a KV backed by the redis server at addr.
func NewRedis(addr string) *Cache {
	redisClient := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	redisStore := redis_store.NewRedis(redisClient)
	return &Cache{
		cache:  cache.New[any](redisStore),
		prefix: KeyPrefix,
		close:  redisClient.Close,
	}
}

func (c *Cache) key(key string) string {
	return c.prefix + key
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.cache.Get(ctx, c.key(key))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// go-cache hands back what was stored, redis returns strings.
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("unexpected value type %T for key %s", value, key)
	}
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	return c.cache.Set(ctx, c.key(key), value)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.cache.Delete(ctx, c.key(key)); err != nil && !isNotFound(err) {
		return err
	}
	return nil
}

func (c *Cache) Close() error {
	return c.close()
}

// GetType returns the underlying store type.
func (c *Cache) GetType() string {
	return c.cache.GetType()
}

func isNotFound(err error) bool {
	var nf *store.NotFound
	return errors.As(err, &nf) || errors.Is(err, redis.Nil)
}
