package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"eventify-api/domain"
)

type backend interface {
	FetchEventsForUser(ctx context.Context, userID string) ([]domain.Event, error)
	FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error)
	InsertEvent(ctx context.Context, userID string, ev domain.Event) error
	UpdateEvent(ctx context.Context, userID string, ev domain.Event) error
	DeleteEvent(ctx context.Context, userID, eventID string) error
	InsertRSVP(ctx context.Context, r domain.RSVP) error
}

// Cache wraps a Storage instance with redis-backed caching for the two
// hottest reads: the user's event list and per-event RSVP statistics.
type Cache struct {
	*Storage
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching Storage wrapper using the provided redis
// client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
	if s, ok := base.(*Storage); ok {
		c.Storage = s
	}
	return c
}

func (c *Cache) FetchEventsForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	if events, ok := c.loadEventsFromCache(ctx, userID); ok {
		return events, nil
	}

	events, err := c.base.FetchEventsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, eventsCacheKey(userID), events)
	return events, nil
}

func (c *Cache) FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error) {
	if stats, ok := c.loadStatsFromCache(ctx, eventID); ok {
		return stats, nil
	}

	stats, err := c.base.FetchRSVPStatistics(ctx, eventID)
	if err != nil {
		return domain.RSVPStatistics{}, err
	}

	c.store(ctx, statsCacheKey(eventID), stats)
	return stats, nil
}

func (c *Cache) InsertEvent(ctx context.Context, userID string, ev domain.Event) error {
	if err := c.base.InsertEvent(ctx, userID, ev); err != nil {
		return err
	}
	c.evict(ctx, eventsCacheKey(userID))
	return nil
}

func (c *Cache) UpdateEvent(ctx context.Context, userID string, ev domain.Event) error {
	if err := c.base.UpdateEvent(ctx, userID, ev); err != nil {
		return err
	}
	c.evict(ctx, eventsCacheKey(userID))
	return nil
}

func (c *Cache) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if err := c.base.DeleteEvent(ctx, userID, eventID); err != nil {
		return err
	}
	c.evict(ctx, eventsCacheKey(userID), statsCacheKey(eventID))
	return nil
}

func (c *Cache) InsertRSVP(ctx context.Context, r domain.RSVP) error {
	if err := c.base.InsertRSVP(ctx, r); err != nil {
		return err
	}
	c.evict(ctx, statsCacheKey(r.EventID))
	return nil
}

func (c *Cache) loadEventsFromCache(ctx context.Context, userID string) ([]domain.Event, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, eventsCacheKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, eventsCacheKey(userID)).Err()
		}
		return nil, false
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		_ = c.redis.Del(ctx, eventsCacheKey(userID)).Err()
		return nil, false
	}
	return events, true
}

func (c *Cache) loadStatsFromCache(ctx context.Context, eventID string) (domain.RSVPStatistics, bool) {
	if c.redis == nil {
		return domain.RSVPStatistics{}, false
	}
	data, err := c.redis.Get(ctx, statsCacheKey(eventID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = c.redis.Del(ctx, statsCacheKey(eventID)).Err()
		}
		return domain.RSVPStatistics{}, false
	}
	var stats domain.RSVPStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		_ = c.redis.Del(ctx, statsCacheKey(eventID)).Err()
		return domain.RSVPStatistics{}, false
	}
	return stats, true
}

func (c *Cache) store(ctx context.Context, key string, value any) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, keys ...string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, keys...).Result()
}

func eventsCacheKey(userID string) string {
	return "events:" + userID
}

func statsCacheKey(eventID string) string {
	return "rsvpstats:" + eventID
}
