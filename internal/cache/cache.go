package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, target any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// UseCache returns the cached value for key, or computes it with callback
// and stores it for ttl. Store failures are ignored.
func UseCache[T any](ctx context.Context, c Cache, key string, ttl time.Duration, callback func() (T, error)) (T, error) {
	var v T
	err := c.Get(ctx, key, &v)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		return v, err
	}

	v, err = callback()
	if err != nil {
		return v, err
	}

	//nolint:errcheck
	c.Set(ctx, key, v, ttl)
	return v, nil
}

type Store struct {
	instance *cache.Cache
}

func (c *Store) Get(ctx context.Context, key string, target any) error {
	return c.instance.Get(ctx, key, target)
}

func (c *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return c.instance.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   ttl,
	})
}

func (c *Store) Delete(ctx context.Context, key string) error {
	err := c.instance.Delete(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}

// New builds a TinyLFU local cache of localSize entries, shared through
// Redis when client is non-nil. Local entries expire after localTTL whatever
// the per-item TTL.
func New(client redis.UniversalClient, localSize int, localTTL time.Duration) *Store {
	opts := &cache.Options{
		LocalCache: cache.NewTinyLFU(localSize, localTTL),
	}
	if client != nil {
		opts.Redis = client
	}
	return &Store{instance: cache.New(opts)}
}

// NewRedisClient returns nil when addr is empty, meaning local-only caching.
func NewRedisClient(addr, password string, db int) redis.UniversalClient {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
