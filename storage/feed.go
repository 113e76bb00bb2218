package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Change kinds reported by the feed.
const (
	ChangeInsert = "insert"
	ChangeUpdate = "update"
)

const rsvpChannelPrefix = "rsvp-changes:"

// RSVPChange is one change-feed notification: a row on the RSVP table
// scoped to the event was inserted or updated.
type RSVPChange struct {
	Kind    string `json:"kind"`
	EventID string `json:"eventId"`
	RSVPID  string `json:"rsvpId"`
}

// Feed is the redis-backed change-notification channel for RSVP rows.
// Writers publish after a successful insert; view models subscribe per
// event and must release the subscription on teardown.
type Feed struct {
	client *redis.Client
	logger *log.Logger
}

// NewFeed creates a Feed using the provided redis client.
func NewFeed(client *redis.Client, logger *log.Logger) *Feed {
	if client == nil {
		panic("storage.NewFeed: redis client is nil")
	}
	if logger == nil {
		logger = log.New()
	}
	return &Feed{client: client, logger: logger}
}

// Publish notifies subscribers of a change to the event's RSVP rows.
func (f *Feed) Publish(ctx context.Context, change RSVPChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, rsvpChannelPrefix+change.EventID, data).Err()
}

// Subscribe delivers changes for one event to onChange until the
// returned release function is called. Release is idempotent.
func (f *Feed) Subscribe(ctx context.Context, eventID string, onChange func(RSVPChange)) (func(), error) {
	sub := f.client.Subscribe(ctx, rsvpChannelPrefix+eventID)
	// Force the SUBSCRIBE round trip so a bad connection fails here
	// instead of silently dropping notifications.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}
	ch := sub.Channel()
	go func() {
		for msg := range ch {
			var change RSVPChange
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				f.logger.Errorf("feed: unable to parse change: %v", err)
				continue
			}
			onChange(change)
		}
	}()
	var once sync.Once
	release := func() {
		once.Do(func() {
			if err := sub.Close(); err != nil {
				f.logger.Errorf("feed: close subscription: %v", err)
			}
		})
	}
	return release, nil
}
