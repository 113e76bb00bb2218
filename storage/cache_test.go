package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eventify-api/domain"
)

type stubBackend struct {
	fetchEventsFn func(ctx context.Context, userID string) ([]domain.Event, error)
	fetchStatsFn  func(ctx context.Context, eventID string) (domain.RSVPStatistics, error)
	insertEventFn func(ctx context.Context, userID string, ev domain.Event) error
	updateEventFn func(ctx context.Context, userID string, ev domain.Event) error
	deleteEventFn func(ctx context.Context, userID, eventID string) error
	insertRSVPFn  func(ctx context.Context, r domain.RSVP) error
}

func (s *stubBackend) FetchEventsForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	if s.fetchEventsFn == nil {
		return nil, errors.New("unexpected FetchEventsForUser call")
	}
	return s.fetchEventsFn(ctx, userID)
}

func (s *stubBackend) FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error) {
	if s.fetchStatsFn == nil {
		return domain.RSVPStatistics{}, errors.New("unexpected FetchRSVPStatistics call")
	}
	return s.fetchStatsFn(ctx, eventID)
}

func (s *stubBackend) InsertEvent(ctx context.Context, userID string, ev domain.Event) error {
	if s.insertEventFn == nil {
		return errors.New("unexpected InsertEvent call")
	}
	return s.insertEventFn(ctx, userID, ev)
}

func (s *stubBackend) UpdateEvent(ctx context.Context, userID string, ev domain.Event) error {
	if s.updateEventFn == nil {
		return errors.New("unexpected UpdateEvent call")
	}
	return s.updateEventFn(ctx, userID, ev)
}

func (s *stubBackend) DeleteEvent(ctx context.Context, userID, eventID string) error {
	if s.deleteEventFn == nil {
		return errors.New("unexpected DeleteEvent call")
	}
	return s.deleteEventFn(ctx, userID, eventID)
}

func (s *stubBackend) InsertRSVP(ctx context.Context, r domain.RSVP) error {
	if s.insertRSVPFn == nil {
		return errors.New("unexpected InsertRSVP call")
	}
	return s.insertRSVPFn(ctx, r)
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheFetchEventsMissThenHit(t *testing.T) {
	client := newTestRedis(t)

	ctx := context.Background()
	userID := "user-1"
	expected := []domain.Event{{ID: "e1", Name: "Launch party", ExpectedGuests: 40}}

	var calls int
	cache := NewCache(&stubBackend{
		fetchEventsFn: func(ctx context.Context, uid string) ([]domain.Event, error) {
			calls++
			if uid != userID {
				t.Fatalf("unexpected user id: %s", uid)
			}
			return append([]domain.Event(nil), expected...), nil
		},
	}, client, time.Minute)

	events, err := cache.FetchEventsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if !reflect.DeepEqual(events, expected) {
		t.Fatalf("unexpected events: %#v", events)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call to backend, got %d", calls)
	}

	cached, err := cache.FetchEventsForUser(ctx, userID)
	if err != nil {
		t.Fatalf("fetch cached events: %v", err)
	}
	if !reflect.DeepEqual(cached, expected) {
		t.Fatalf("unexpected cached events: %#v", cached)
	}
	if calls != 1 {
		t.Fatalf("expected cached fetch to avoid backend, calls=%d", calls)
	}
}

func TestCacheFetchStatisticsMissThenHit(t *testing.T) {
	client := newTestRedis(t)

	ctx := context.Background()
	expected := domain.RSVPStatistics{Total: 4, Yes: 2, No: 1, Maybe: 1}

	var calls int
	cache := NewCache(&stubBackend{
		fetchStatsFn: func(ctx context.Context, eventID string) (domain.RSVPStatistics, error) {
			calls++
			return expected, nil
		},
	}, client, time.Minute)

	for i := 0; i < 2; i++ {
		stats, err := cache.FetchRSVPStatistics(ctx, "evt-1")
		if err != nil {
			t.Fatalf("fetch statistics: %v", err)
		}
		if stats != expected {
			t.Fatalf("unexpected statistics: %+v", stats)
		}
	}
	if calls != 1 {
		t.Fatalf("expected single backend call, got %d", calls)
	}
}

func TestCacheInsertRSVPEvictsStatistics(t *testing.T) {
	client := newTestRedis(t)

	ctx := context.Background()
	var statsCalls int
	cache := NewCache(&stubBackend{
		fetchStatsFn: func(ctx context.Context, eventID string) (domain.RSVPStatistics, error) {
			statsCalls++
			return domain.RSVPStatistics{Total: statsCalls, Yes: statsCalls}, nil
		},
		insertRSVPFn: func(ctx context.Context, r domain.RSVP) error { return nil },
	}, client, time.Minute)

	if _, err := cache.FetchRSVPStatistics(ctx, "evt-1"); err != nil {
		t.Fatalf("fetch statistics: %v", err)
	}
	if err := cache.InsertRSVP(ctx, domain.RSVP{ID: "r1", EventID: "evt-1", GuestName: "Ada", Status: domain.RSVPYes}); err != nil {
		t.Fatalf("insert rsvp: %v", err)
	}
	stats, err := cache.FetchRSVPStatistics(ctx, "evt-1")
	if err != nil {
		t.Fatalf("fetch statistics after insert: %v", err)
	}
	if stats.Total != 2 {
		t.Fatalf("expected fresh statistics after eviction, got %+v", stats)
	}
	if statsCalls != 2 {
		t.Fatalf("expected 2 backend calls, got %d", statsCalls)
	}
}

func TestCacheInsertEventEvictsEventList(t *testing.T) {
	client := newTestRedis(t)

	ctx := context.Background()
	var fetchCalls int
	cache := NewCache(&stubBackend{
		fetchEventsFn: func(ctx context.Context, uid string) ([]domain.Event, error) {
			fetchCalls++
			return []domain.Event{{ID: "e1"}}, nil
		},
		insertEventFn: func(ctx context.Context, uid string, ev domain.Event) error { return nil },
	}, client, time.Minute)

	if _, err := cache.FetchEventsForUser(ctx, "u"); err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if err := cache.InsertEvent(ctx, "u", domain.Event{ID: "e2"}); err != nil {
		t.Fatalf("insert event: %v", err)
	}
	if _, err := cache.FetchEventsForUser(ctx, "u"); err != nil {
		t.Fatalf("fetch events after insert: %v", err)
	}
	if fetchCalls != 2 {
		t.Fatalf("expected eviction to force refetch, calls=%d", fetchCalls)
	}
}

func TestCacheBackendErrorPropagates(t *testing.T) {
	client := newTestRedis(t)

	wantErr := errors.New("boom")
	cache := NewCache(&stubBackend{
		fetchEventsFn: func(ctx context.Context, uid string) ([]domain.Event, error) {
			return nil, wantErr
		},
	}, client, time.Minute)

	if _, err := cache.FetchEventsForUser(context.Background(), "u"); !errors.Is(err, wantErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
