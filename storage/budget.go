package storage

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type budgetItemEntity struct {
	aztables.Entity
	Category  string  `json:"Category"`
	Allocated float64 `json:"Allocated"`
	Spent     float64 `json:"Spent"`
}

func decodeBudgetItemEntity(data []byte) (domain.BudgetItem, error) {
	var ent budgetItemEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.BudgetItem{}, err
	}
	return domain.BudgetItem{
		ID:        ent.RowKey,
		EventID:   ent.PartitionKey,
		Category:  ent.Category,
		Allocated: ent.Allocated,
		Spent:     ent.Spent,
		SyncState: domain.ItemConfirmed,
	}, nil
}

func encodeBudgetItemEntity(it domain.BudgetItem) ([]byte, error) {
	return json.Marshal(budgetItemEntity{
		Entity:    aztables.Entity{PartitionKey: it.EventID, RowKey: it.ID},
		Category:  it.Category,
		Allocated: it.Allocated,
		Spent:     it.Spent,
	})
}

// FetchBudgetItems retrieves the budget lines for one event.
func (s *Storage) FetchBudgetItems(ctx context.Context, eventID string) ([]domain.BudgetItem, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(eventID) + "'"
	pager := s.budgetItems.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	items := []domain.BudgetItem{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			it, err := decodeBudgetItemEntity(e)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
		}
	}
	return items, nil
}

// InsertBudgetItem stores a new budget line.
func (s *Storage) InsertBudgetItem(ctx context.Context, it domain.BudgetItem) error {
	payload, err := encodeBudgetItemEntity(it)
	if err != nil {
		return err
	}
	_, err = s.budgetItems.AddEntity(ctx, payload, nil)
	return err
}

// UpdateBudgetItem merges the given budget fields into the stored row.
func (s *Storage) UpdateBudgetItem(ctx context.Context, it domain.BudgetItem) error {
	payload, err := encodeBudgetItemEntity(it)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.budgetItems.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("budget_items", it.ID)
	}
	return err
}

// DeleteBudgetItem removes the budget line.
func (s *Storage) DeleteBudgetItem(ctx context.Context, eventID, itemID string) error {
	_, err := s.budgetItems.DeleteEntity(ctx, eventID, itemID, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}
