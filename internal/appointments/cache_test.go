package appointments

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSlotCache(client, ttl), mr
}

func TestSlotCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	times := []string{"15:00", "16:30"}
	if err := cache.Set(ctx, "2025-03-10", times); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !reflect.DeepEqual(got, times) {
		t.Fatalf("expected %v, got %v", times, got)
	}
}

func TestSlotCacheMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	got, err := cache.Get(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on miss, got %v", got)
	}
}

func TestSlotCacheEmptyListIsAHit(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	// A date with every slot booked caches an empty list, which must be
	// distinguishable from a miss.
	if err := cache.Set(ctx, "2025-03-10", nil); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := cache.Get(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty hit, got %#v", got)
	}
}

func TestSlotCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "2025-03-10", []string{"15:00"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := cache.Invalidate(ctx, "2025-03-10"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	got, err := cache.Get(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss after invalidation, got %v", got)
	}
}

func TestSlotCacheExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	if err := cache.Set(ctx, "2025-03-10", []string{"15:00"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, "2025-03-10")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss after expiry, got %v", got)
	}
}
