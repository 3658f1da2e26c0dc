package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *ScheduleCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewScheduleCache(client, time.Minute)
}

func TestScheduleCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := cache.Get(ctx, day); ok {
		t.Fatal("expected cold cache miss")
	}

	appts := []Appointment{{
		ID:          "a1",
		StartsAt:    day.Add(10 * time.Hour),
		EndsAt:      day.Add(11 * time.Hour),
		Type:        TypeStandard,
		PatientName: "Alice",
	}}
	cache.Set(ctx, day, appts)

	got, ok := cache.Get(ctx, day)
	if !ok {
		t.Fatal("expected cache hit after Set")
	}
	if len(got) != 1 || got[0].ID != "a1" || got[0].Type != TypeStandard {
		t.Fatalf("unexpected cached schedule %+v", got)
	}
	if !got[0].StartsAt.Equal(appts[0].StartsAt) {
		t.Errorf("starts_at = %s, want %s", got[0].StartsAt, appts[0].StartsAt)
	}
}

func TestScheduleCacheInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cache.Set(ctx, day, []Appointment{})
	if _, ok := cache.Get(ctx, day); !ok {
		t.Fatal("expected hit before invalidation")
	}

	// Invalidation accepts any instant within the day.
	cache.Invalidate(ctx, day.Add(10*time.Hour))
	if _, ok := cache.Get(ctx, day); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestScheduleCacheNilSafe(t *testing.T) {
	var cache *ScheduleCache
	ctx := context.Background()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := cache.Get(ctx, day); ok {
		t.Error("nil cache should always miss")
	}
	cache.Set(ctx, day, nil)
	cache.Invalidate(ctx, day)

	if NewScheduleCache(nil, time.Minute) != nil {
		t.Error("expected nil cache without a redis client")
	}
}
