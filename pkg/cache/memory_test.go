package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	ctx := context.Background()
	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Fatalf("got %q, want %q", got, "v")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	if err := mc.Get(context.Background(), "absent", &got); !IsMiss(err) {
		t.Fatalf("expected cache miss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mc := NewMemoryCache(WithMemoryClock(func() time.Time { return now }))
	defer mc.Close()

	ctx := context.Background()
	if err := mc.Set(ctx, "k", 42, 5*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(4 * time.Minute)
	var got int
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get before expiry: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}

	now = now.Add(2 * time.Minute)
	if err := mc.Get(ctx, "k", &got); !IsMiss(err) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}

	if ok, _ := mc.Exists(ctx, "k"); ok {
		t.Fatal("expired key still reported as existing")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mc := NewMemoryCache(
		WithMemoryMaxSize(2),
		WithMemoryClock(func() time.Time { return now }),
	)
	defer mc.Close()

	ctx := context.Background()
	mc.Set(ctx, "a", 1, time.Hour)
	now = now.Add(time.Second)
	mc.Set(ctx, "b", 2, time.Hour)

	// Touch "a" so "b" becomes the LRU entry.
	now = now.Add(time.Second)
	var got int
	if err := mc.Get(ctx, "a", &got); err != nil {
		t.Fatalf("get a: %v", err)
	}

	now = now.Add(time.Second)
	mc.Set(ctx, "c", 3, time.Hour)

	if err := mc.Get(ctx, "b", &got); !IsMiss(err) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &got); err != nil {
		t.Fatalf("a should survive eviction: %v", err)
	}
}

func TestMemoryCacheDestTypeMismatch(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	ctx := context.Background()
	mc.Set(ctx, "k", "string value", time.Minute)

	var got int
	if err := mc.Get(ctx, "k", &got); err == nil {
		t.Fatal("expected assignment error for mismatched dest type")
	}
}
