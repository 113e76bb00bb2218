package storage

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"

	"eventify-api/domain"
)

type invitationEntity struct {
	aztables.Entity
	OwnerID   string `json:"OwnerId"`
	Code      string `json:"Code"`
	Active    bool   `json:"Active"`
	ExpiresAt string `json:"ExpiresAt"`
	CreatedAt string `json:"CreatedAt"`
}

func decodeInvitationEntity(data []byte) (domain.Invitation, error) {
	var ent invitationEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Invitation{}, err
	}
	expires, err := parseTime(ent.ExpiresAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	created, err := parseTime(ent.CreatedAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	return domain.Invitation{
		ID:        ent.RowKey,
		EventID:   ent.PartitionKey,
		OwnerID:   ent.OwnerID,
		Code:      ent.Code,
		Active:    ent.Active,
		ExpiresAt: expires,
		CreatedAt: created,
	}, nil
}

// GenerateInvitationCode creates an invitation row for the event and
// returns the opaque code embedded in the shareable URL. The owner is
// recorded so the public surface can resolve the event row later.
func (s *Storage) GenerateInvitationCode(ctx context.Context, ownerID, eventID string, expiresAt time.Time) (domain.Invitation, error) {
	inv := domain.Invitation{
		ID:        uuid.NewString(),
		EventID:   eventID,
		OwnerID:   ownerID,
		Code:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		Active:    true,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(invitationEntity{
		Entity:    aztables.Entity{PartitionKey: inv.EventID, RowKey: inv.ID},
		OwnerID:   inv.OwnerID,
		Code:      inv.Code,
		Active:    inv.Active,
		ExpiresAt: formatTime(inv.ExpiresAt),
		CreatedAt: formatTime(inv.CreatedAt),
	})
	if err != nil {
		return domain.Invitation{}, err
	}
	if _, err := s.invitations.AddEntity(ctx, payload, nil); err != nil {
		return domain.Invitation{}, err
	}
	return inv, nil
}

// FetchInvitationByCode resolves a shareable code to its invitation.
func (s *Storage) FetchInvitationByCode(ctx context.Context, code string) (domain.Invitation, error) {
	filter := "Code eq '" + escapeFilterValue(code) + "'"
	pager := s.invitations.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return domain.Invitation{}, err
		}
		for _, e := range resp.Entities {
			return decodeInvitationEntity(e)
		}
	}
	return domain.Invitation{}, notFound("invitations", code)
}

// FetchInvitationsForEvent lists the invitations created for one event.
func (s *Storage) FetchInvitationsForEvent(ctx context.Context, eventID string) ([]domain.Invitation, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(eventID) + "'"
	pager := s.invitations.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	invs := []domain.Invitation{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			inv, err := decodeInvitationEntity(e)
			if err != nil {
				return nil, err
			}
			invs = append(invs, inv)
		}
	}
	return invs, nil
}

// DeactivateInvitation closes an invitation for further submissions.
func (s *Storage) DeactivateInvitation(ctx context.Context, eventID, invitationID string) error {
	payload, err := json.Marshal(map[string]any{
		"PartitionKey": eventID,
		"RowKey":       invitationID,
		"Active":       false,
	})
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.invitations.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("invitations", invitationID)
	}
	return err
}
