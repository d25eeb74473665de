package cache

import (
	"context"
	"errors"
	"time"
)

// Durable is the authoritative second tier. *RedisCache implements it.
type Durable interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetWithTTL(ctx context.Context, key string, dest interface{}) (time.Duration, error)
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (bool, error)
	Close() error
}

// LayeredCache is a two-level cache (L1: memory, L2: durable). Both physical
// copies act as one logical entry: L1 is refreshed from L2 on read-through
// and its expiry never exceeds the remaining durable TTL.
type LayeredCache struct {
	memCache *MemoryCache
	durable  Durable
	bound    time.Duration
}

// NewLayeredCache creates a layered cache. A nil durable tier degrades to
// memory-only operation.
func NewLayeredCache(durable Durable, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		FastTierBound: time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache: NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		durable:  durable,
		bound:    cfg.FastTierBound,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	// Write-through: both tiers, L1 capped at the fast-tier bound.
	_ = lc.memCache.Set(ctx, key, value, lc.fastTTL(ttl))

	if lc.durable == nil {
		return nil
	}
	return lc.durable.Set(ctx, key, value, ttl)
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.memCache.Get(ctx, key, dest); err == nil {
		return nil
	}

	if lc.durable == nil {
		return ErrCacheMiss
	}

	remaining, err := lc.durable.GetWithTTL(ctx, key, dest)
	if err != nil {
		return err
	}

	// Backfill L1 for the next read, bounded by the durable expiry.
	if remaining > 0 {
		_ = lc.memCache.Set(ctx, key, deref(dest), lc.fastTTL(remaining))
	}
	return nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	if lc.durable == nil {
		return nil
	}
	return lc.durable.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	if ok, err := lc.memCache.Exists(ctx, keys...); err == nil && ok {
		return true, nil
	}
	if lc.durable == nil {
		return false, nil
	}
	return lc.durable.Exists(ctx, keys...)
}

// IsMiss reports whether err is a plain cache miss rather than a tier failure.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}

func (lc *LayeredCache) fastTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > lc.bound {
		return lc.bound
	}
	return ttl
}

// Close closes both cache tiers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	if lc.durable == nil {
		return nil
	}
	return lc.durable.Close()
}
