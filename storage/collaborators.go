package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type collaboratorEntity struct {
	aztables.Entity
	Email      string `json:"Email"`
	Name       string `json:"Name"`
	Role       string `json:"Role"`
	Status     string `json:"Status"`
	InvitedAt  string `json:"InvitedAt"`
	AcceptedAt string `json:"AcceptedAt"`
}

// decodeCollaboratorEntity normalizes legacy role spellings while
// decoding so only the canonical vocabulary leaves the storage boundary.
func decodeCollaboratorEntity(data []byte) (domain.Collaborator, error) {
	var ent collaboratorEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Collaborator{}, err
	}
	role := domain.NormalizeRole(ent.Role)
	if role == "" {
		return domain.Collaborator{}, fmt.Errorf("collaborators: unknown role %q on row %s", ent.Role, ent.RowKey)
	}
	invited, err := parseTime(ent.InvitedAt)
	if err != nil {
		return domain.Collaborator{}, err
	}
	accepted, err := parseTime(ent.AcceptedAt)
	if err != nil {
		return domain.Collaborator{}, err
	}
	return domain.Collaborator{
		ID:         ent.RowKey,
		EventID:    ent.PartitionKey,
		Email:      ent.Email,
		Name:       ent.Name,
		Role:       role,
		Status:     ent.Status,
		InvitedAt:  invited,
		AcceptedAt: accepted,
	}, nil
}

// FetchCollaborators lists the sharing relations for one event.
func (s *Storage) FetchCollaborators(ctx context.Context, eventID string) ([]domain.Collaborator, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(eventID) + "'"
	pager := s.collaborators.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	collabs := []domain.Collaborator{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			c, err := decodeCollaboratorEntity(e)
			if err != nil {
				return nil, err
			}
			collabs = append(collabs, c)
		}
	}
	return collabs, nil
}

// InsertCollaborator stores a new sharing relation.
func (s *Storage) InsertCollaborator(ctx context.Context, c domain.Collaborator) error {
	payload, err := json.Marshal(collaboratorEntity{
		Entity:     aztables.Entity{PartitionKey: c.EventID, RowKey: c.ID},
		Email:      c.Email,
		Name:       c.Name,
		Role:       c.Role,
		Status:     c.Status,
		InvitedAt:  formatTime(c.InvitedAt),
		AcceptedAt: formatTime(c.AcceptedAt),
	})
	if err != nil {
		return err
	}
	_, err = s.collaborators.AddEntity(ctx, payload, nil)
	return err
}

// UpdateCollaboratorStatus records an accept or decline.
func (s *Storage) UpdateCollaboratorStatus(ctx context.Context, eventID, collaboratorID, status string, acceptedAt string) error {
	row := map[string]any{
		"PartitionKey": eventID,
		"RowKey":       collaboratorID,
		"Status":       status,
	}
	if acceptedAt != "" {
		row["AcceptedAt"] = acceptedAt
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.collaborators.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("collaborators", collaboratorID)
	}
	return err
}

// DeleteCollaborator removes the sharing relation.
func (s *Storage) DeleteCollaborator(ctx context.Context, eventID, collaboratorID string) error {
	_, err := s.collaborators.DeleteEntity(ctx, eventID, collaboratorID, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}
