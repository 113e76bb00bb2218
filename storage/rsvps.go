package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type rsvpEntity struct {
	aztables.Entity
	InvitationID string `json:"InvitationId"`
	GuestName    string `json:"GuestName"`
	GuestEmail   string `json:"GuestEmail"`
	GuestPhone   string `json:"GuestPhone"`
	Status       string `json:"Status"`
	RespondedAt  string `json:"RespondedAt"`
	CreatedAt    string `json:"CreatedAt"`
}

func decodeRSVPEntity(data []byte) (domain.RSVP, error) {
	var ent rsvpEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.RSVP{}, err
	}
	responded, err := parseTime(ent.RespondedAt)
	if err != nil {
		return domain.RSVP{}, err
	}
	created, err := parseTime(ent.CreatedAt)
	if err != nil {
		return domain.RSVP{}, err
	}
	return domain.RSVP{
		ID:           ent.RowKey,
		InvitationID: ent.InvitationID,
		EventID:      ent.PartitionKey,
		GuestName:    ent.GuestName,
		GuestEmail:   ent.GuestEmail,
		GuestPhone:   ent.GuestPhone,
		Status:       ent.Status,
		RespondedAt:  responded,
		CreatedAt:    created,
	}, nil
}

// FetchRSVPsForEvent retrieves every response for the event, newest
// first.
func (s *Storage) FetchRSVPsForEvent(ctx context.Context, eventID string) ([]domain.RSVP, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(eventID) + "'"
	pager := s.rsvps.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	rows := []domain.RSVP{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			r, err := decodeRSVPEntity(e)
			if err != nil {
				return nil, err
			}
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

// FetchRSVPStatistics is the aggregate procedure for one event. Rows
// with unknown statuses are not counted.
func (s *Storage) FetchRSVPStatistics(ctx context.Context, eventID string) (domain.RSVPStatistics, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(eventID) + "'"
	pager := s.rsvps.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	var stats domain.RSVPStatistics
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return domain.RSVPStatistics{}, err
		}
		for _, e := range resp.Entities {
			var ent rsvpEntity
			if err := json.Unmarshal(e, &ent); err != nil {
				return domain.RSVPStatistics{}, err
			}
			stats.Count(ent.Status)
		}
	}
	return stats, nil
}

// InsertRSVP stores a guest response. Submissions are one-time inserts;
// owners never mutate them afterwards.
func (s *Storage) InsertRSVP(ctx context.Context, r domain.RSVP) error {
	payload, err := json.Marshal(rsvpEntity{
		Entity:       aztables.Entity{PartitionKey: r.EventID, RowKey: r.ID},
		InvitationID: r.InvitationID,
		GuestName:    r.GuestName,
		GuestEmail:   r.GuestEmail,
		GuestPhone:   r.GuestPhone,
		Status:       r.Status,
		RespondedAt:  formatTime(r.RespondedAt),
		CreatedAt:    formatTime(r.CreatedAt),
	})
	if err != nil {
		return err
	}
	_, err = s.rsvps.AddEntity(ctx, payload, nil)
	return err
}
