package appointments

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScheduleCache holds day schedules in Redis as JSON blobs so availability
// and schedule reads don't hit the database on every request. All methods
// are nil-safe; a nil cache simply misses.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache returns a cache or nil when Redis is not configured.
func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ScheduleCache{client: client, ttl: ttl}
}

func scheduleKey(day time.Time) string {
	return "schedule:" + dayStart(day).Format("2006-01-02")
}

// Get returns the cached day schedule and whether it was present.
func (c *ScheduleCache) Get(ctx context.Context, day time.Time) ([]Appointment, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, scheduleKey(day)).Bytes()
	if err != nil {
		return nil, false
	}
	var appts []Appointment
	if err := json.Unmarshal(data, &appts); err != nil {
		return nil, false
	}
	return appts, true
}

// Set stores the day schedule with the configured TTL.
func (c *ScheduleCache) Set(ctx context.Context, day time.Time, appts []Appointment) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(appts)
	if err != nil {
		return
	}
	c.client.Set(ctx, scheduleKey(day), data, c.ttl)
}

// Invalidate drops the cached schedule for a day after a write.
func (c *ScheduleCache) Invalidate(ctx context.Context, day time.Time) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, scheduleKey(day))
}
