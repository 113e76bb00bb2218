package storage

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"eventify-api/domain"
)

type vendorEntity struct {
	aztables.Entity
	Name          string  `json:"Name"`
	ServiceType   string  `json:"ServiceType"`
	ContactPhone  string  `json:"ContactPhone"`
	ContactEmail  string  `json:"ContactEmail"`
	Amount        float64 `json:"Amount"`
	PaymentStatus string  `json:"PaymentStatus"`
	Notes         string  `json:"Notes"`
	EventID       string  `json:"EventId"`
	CreatedAt     string  `json:"CreatedAt"`
}

func decodeVendorEntity(data []byte) (domain.Vendor, error) {
	var ent vendorEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Vendor{}, err
	}
	created, err := parseTime(ent.CreatedAt)
	if err != nil {
		return domain.Vendor{}, err
	}
	return domain.Vendor{
		ID:            ent.RowKey,
		Name:          ent.Name,
		ServiceType:   ent.ServiceType,
		ContactPhone:  ent.ContactPhone,
		ContactEmail:  ent.ContactEmail,
		Amount:        ent.Amount,
		PaymentStatus: ent.PaymentStatus,
		Notes:         ent.Notes,
		EventID:       ent.EventID,
		CreatedAt:     created,
	}, nil
}

func encodeVendorEntity(userID string, v domain.Vendor) ([]byte, error) {
	return json.Marshal(vendorEntity{
		Entity:        aztables.Entity{PartitionKey: userID, RowKey: v.ID},
		Name:          v.Name,
		ServiceType:   v.ServiceType,
		ContactPhone:  v.ContactPhone,
		ContactEmail:  v.ContactEmail,
		Amount:        v.Amount,
		PaymentStatus: v.PaymentStatus,
		Notes:         v.Notes,
		EventID:       v.EventID,
		CreatedAt:     formatTime(v.CreatedAt),
	})
}

// FetchVendorsForUser retrieves the user's vendor book.
func (s *Storage) FetchVendorsForUser(ctx context.Context, userID string) ([]domain.Vendor, error) {
	filter := "PartitionKey eq '" + escapeFilterValue(userID) + "'"
	pager := s.vendors.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	vendors := []domain.Vendor{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			v, err := decodeVendorEntity(e)
			if err != nil {
				return nil, err
			}
			vendors = append(vendors, v)
		}
	}
	return vendors, nil
}

// InsertVendor stores a new vendor row.
func (s *Storage) InsertVendor(ctx context.Context, userID string, v domain.Vendor) error {
	payload, err := encodeVendorEntity(userID, v)
	if err != nil {
		return err
	}
	_, err = s.vendors.AddEntity(ctx, payload, nil)
	return err
}

// UpdateVendor merges the given vendor fields into the stored row.
func (s *Storage) UpdateVendor(ctx context.Context, userID string, v domain.Vendor) error {
	payload, err := encodeVendorEntity(userID, v)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.vendors.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil && IsNotFound(err) {
		return notFound("vendors", v.ID)
	}
	return err
}

// DeleteVendor removes the vendor row.
func (s *Storage) DeleteVendor(ctx context.Context, userID, vendorID string) error {
	_, err := s.vendors.DeleteEntity(ctx, userID, vendorID, nil)
	if err != nil && IsNotFound(err) {
		return nil
	}
	return err
}
