package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type eventEntity struct {
	aztables.Entity
	Name           string  `json:"Name"`
	Description    string  `json:"Description"`
	Date           string  `json:"Date"`
	EventTime      string  `json:"EventTime"`
	Venue          string  `json:"Venue"`
	ExpectedGuests int     `json:"ExpectedGuests"`
	Budget         float64 `json:"Budget"`
	CreatedAt      string  `json:"CreatedAt"`
}

func decodeEventEntity(data []byte) (domain.Event, error) {
	var ent eventEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Event{}, err
	}
	date, err := parseTime(ent.Date)
	if err != nil {
		return domain.Event{}, err
	}
	created, err := parseTime(ent.CreatedAt)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		ID:             ent.RowKey,
		Name:           ent.Name,
		Description:    ent.Description,
		Date:           date,
		Time:           ent.EventTime,
		Venue:          ent.Venue,
		ExpectedGuests: ent.ExpectedGuests,
		Budget:         ent.Budget,
		CreatedAt:      created,
	}, nil
}

func encodeEventEntity(userID string, ev domain.Event) ([]byte, error) {
	return json.Marshal(eventEntity{
		Entity:         aztables.Entity{PartitionKey: userID, RowKey: ev.ID},
		Name:           ev.Name,
		Description:    ev.Description,
		Date:           formatTime(ev.Date),
		EventTime:      ev.Time,
		Venue:          ev.Venue,
		ExpectedGuests: ev.ExpectedGuests,
		Budget:         ev.Budget,
		CreatedAt:      formatTime(ev.CreatedAt),
	})
}

// FetchEventsForUser retrieves all events owned by the user, most
// recently created first.
func (s *Storage) FetchEventsForUser(ctx context.Context, userID string) ([]domain.Event, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(userID) + "'"
	pager := s.events.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	events := []domain.Event{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			ev, err := decodeEventEntity(e)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.After(events[j].CreatedAt) })
	return events, nil
}

// FetchEvent retrieves a single event owned by the user.
func (s *Storage) FetchEvent(ctx context.Context, userID, eventID string) (domain.Event, error) {
	resp, err := s.events.GetEntity(ctx, userID, eventID, nil)
	if err != nil {
		if IsNotFound(err) {
			return domain.Event{}, notFound("events", eventID)
		}
		return domain.Event{}, err
	}
	return decodeEventEntity(resp.Value)
}

// InsertEvent stores a new event row.
func (s *Storage) InsertEvent(ctx context.Context, userID string, ev domain.Event) error {
	payload, err := encodeEventEntity(userID, ev)
	if err != nil {
		return err
	}
	_, err = s.events.AddEntity(ctx, payload, nil)
	return err
}

// UpdateEvent merges the given event fields into the stored row.
func (s *Storage) UpdateEvent(ctx context.Context, userID string, ev domain.Event) error {
	payload, err := encodeEventEntity(userID, ev)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.events.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("events", ev.ID)
	}
	return err
}

// DeleteEvent removes the event row. Deleting an already-missing row is
// not an error; deletion is best effort.
func (s *Storage) DeleteEvent(ctx context.Context, userID, eventID string) error {
	_, err := s.events.DeleteEntity(ctx, userID, eventID, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}
