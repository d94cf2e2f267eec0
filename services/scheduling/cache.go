package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotCache memoizes computed day listings. Failures are logged and treated
// as misses; the store stays the source of truth and booking always
// re-validates against it.
type SlotCache interface {
	Get(ctx context.Context, counselorID, date string) (*DaySlots, bool)
	Set(ctx context.Context, counselorID, date string, slots DaySlots)
	Invalidate(ctx context.Context, counselorID, date string)
	InvalidateCounselor(ctx context.Context, counselorID string)
}

// NoopSlotCache never stores anything.
type NoopSlotCache struct{}

func (NoopSlotCache) Get(context.Context, string, string) (*DaySlots, bool) { return nil, false }
func (NoopSlotCache) Set(context.Context, string, string, DaySlots)         {}
func (NoopSlotCache) Invalidate(context.Context, string, string)            {}
func (NoopSlotCache) InvalidateCounselor(context.Context, string)           {}

// RedisSlotCache keeps listings under "slots:<counselorID>:<date>".
type RedisSlotCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// NewRedisSlotCache returns a cache backed by client. A nil client disables caching.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) SlotCache {
	if client == nil || ttl <= 0 {
		return NoopSlotCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSlotCache{Client: client, TTL: ttl, Logger: logger}
}

func slotKey(counselorID, date string) string {
	return fmt.Sprintf("slots:%s:%s", counselorID, date)
}

func (c *RedisSlotCache) Get(ctx context.Context, counselorID, date string) (*DaySlots, bool) {
	cached, err := c.Client.Get(ctx, slotKey(counselorID, date)).Result()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("slot cache read failed", zap.String("counselorID", counselorID), zap.Error(err))
		}
		return nil, false
	}
	var slots DaySlots
	if err := json.Unmarshal([]byte(cached), &slots); err != nil {
		c.Logger.Warn("slot cache entry corrupt", zap.String("counselorID", counselorID), zap.Error(err))
		return nil, false
	}
	return &slots, true
}

func (c *RedisSlotCache) Set(ctx context.Context, counselorID, date string, slots DaySlots) {
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, slotKey(counselorID, date), data, c.TTL).Err(); err != nil {
		c.Logger.Warn("slot cache write failed", zap.String("counselorID", counselorID), zap.Error(err))
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, counselorID, date string) {
	if err := c.Client.Del(ctx, slotKey(counselorID, date)).Err(); err != nil {
		c.Logger.Warn("slot cache invalidate failed", zap.String("counselorID", counselorID), zap.String("date", date), zap.Error(err))
	}
}

// InvalidateCounselor drops every cached day of a counselor.
func (c *RedisSlotCache) InvalidateCounselor(ctx context.Context, counselorID string) {
	iter := c.Client.Scan(ctx, 0, slotKey(counselorID, "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.Logger.Warn("slot cache scan failed", zap.String("counselorID", counselorID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		c.Logger.Warn("slot cache invalidate failed", zap.String("counselorID", counselorID), zap.Error(err))
	}
}
