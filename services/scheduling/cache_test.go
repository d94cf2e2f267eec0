package scheduling

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSlotCache_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSlotCache(client, 5*time.Minute, zap.NewNop())
	ctx := context.Background()

	_, ok := cache.Get(ctx, "c1", monday)
	assert.False(t, ok)

	want := DaySlots{Date: monday, Slots: []string{"2025-06-02T09:00"}, WorkingDay: true}
	cache.Set(ctx, "c1", monday, want)

	got, ok := cache.Get(ctx, "c1", monday)
	require.True(t, ok)
	assert.Equal(t, want, *got)
	assert.Equal(t, 5*time.Minute, mr.TTL("slots:c1:"+monday))

	mr.FastForward(6 * time.Minute)
	_, ok = cache.Get(ctx, "c1", monday)
	assert.False(t, ok)
}

func TestRedisSlotCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSlotCache(client, time.Minute, nil)
	require.NoError(t, mr.Set("slots:c1:"+monday, "{not json"))

	_, ok := cache.Get(context.Background(), "c1", monday)
	assert.False(t, ok)
}

func TestRedisSlotCache_Invalidation(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSlotCache(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	cache.Set(ctx, "c1", "2025-06-02", DaySlots{Date: "2025-06-02"})
	cache.Set(ctx, "c1", "2025-06-09", DaySlots{Date: "2025-06-09"})
	cache.Set(ctx, "c10", "2025-06-02", DaySlots{Date: "2025-06-02"})

	cache.Invalidate(ctx, "c1", "2025-06-02")
	assert.False(t, mr.Exists("slots:c1:2025-06-02"))
	assert.True(t, mr.Exists("slots:c1:2025-06-09"))

	cache.InvalidateCounselor(ctx, "c1")
	assert.False(t, mr.Exists("slots:c1:2025-06-09"))
	assert.True(t, mr.Exists("slots:c10:2025-06-02"))
}

func TestRedisSlotCache_UnavailableRedisDegradesToMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisSlotCache(client, time.Minute, zap.NewNop())
	mr.Close()

	ctx := context.Background()
	cache.Set(ctx, "c1", monday, DaySlots{Date: monday})
	_, ok := cache.Get(ctx, "c1", monday)
	assert.False(t, ok)
	cache.InvalidateCounselor(ctx, "c1")
}

func TestNewRedisSlotCache_DisabledWithoutClient(t *testing.T) {
	assert.IsType(t, NoopSlotCache{}, NewRedisSlotCache(nil, time.Minute, nil))

	_, client := newTestRedis(t)
	assert.IsType(t, NoopSlotCache{}, NewRedisSlotCache(client, 0, nil))
}

func TestAvailableSlots_ServedFromCacheAndInvalidatedByBooking(t *testing.T) {
	mr, client := newTestRedis(t)
	f := newFixture(t)
	f.svc.Cache = NewRedisSlotCache(client, time.Minute, zap.NewNop())
	ctx := context.Background()

	first, err := f.svc.AvailableSlots(ctx, "c1", monday)
	require.NoError(t, err)
	require.True(t, mr.Exists("slots:c1:"+monday))

	// A cached entry is returned as stored.
	f.svc.Cache.Set(ctx, "c1", monday, DaySlots{Date: monday, Slots: []string{"cached"}, WorkingDay: true})
	cached, err := f.svc.AvailableSlots(ctx, "c1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, cached.Slots)

	_, err = f.svc.Book(ctx, BookingRequest{CounselorID: "c1", StudentID: "s1", AppointmentTime: "2025-06-02T09:00"})
	require.NoError(t, err)
	assert.False(t, mr.Exists("slots:c1:"+monday))

	fresh, err := f.svc.AvailableSlots(ctx, "c1", monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02T09:00", "2025-06-02T10:00"}, first.Slots)
	assert.Equal(t, []string{"2025-06-02T10:00"}, fresh.Slots)
}
