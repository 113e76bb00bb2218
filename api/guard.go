package api

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSubmissionGuard records guest submission keys in Redis so all
// instances reject a duplicate response for the same invitation.
type RedisSubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSubmissionGuard creates a guard using the provided Redis
// client and TTL. A zero TTL keeps keys until the invitation cycle is
// over and they expire with the database.
func NewRedisSubmissionGuard(client *redis.Client, ttl time.Duration) *RedisSubmissionGuard {
	return &RedisSubmissionGuard{client: client, ttl: ttl}
}

func (r *RedisSubmissionGuard) key(invitationID, guestKey string) string {
	return fmt.Sprintf("rsvp:%s:%s", invitationID, guestKey)
}

// Add records the guest key if it does not already exist. It returns
// true when the key was newly added.
func (r *RedisSubmissionGuard) Add(ctx context.Context, invitationID, guestKey string) (bool, error) {
	return r.client.SetNX(ctx, r.key(invitationID, guestKey), 1, r.ttl).Result()
}

// Remove deletes a previously recorded key. It is used when the insert
// fails so the guest may retry.
func (r *RedisSubmissionGuard) Remove(ctx context.Context, invitationID, guestKey string) error {
	return r.client.Del(ctx, r.key(invitationID, guestKey)).Err()
}
