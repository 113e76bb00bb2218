package storage

import (
	"testing"
	"time"

	"eventify-api/domain"
)

func TestDecodeEventEntity(t *testing.T) {
	data := []byte(`{
		"PartitionKey": "user-1",
		"RowKey": "evt-1",
		"Name": "Housewarming",
		"Description": "Bring snacks",
		"Date": "2025-09-20T00:00:00Z",
		"EventTime": "18:30",
		"Venue": "Home",
		"ExpectedGuests": 25,
		"Budget": 1200.5,
		"CreatedAt": "2025-08-01T10:00:00Z"
	}`)
	ev, err := decodeEventEntity(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.ID != "evt-1" || ev.Name != "Housewarming" || ev.ExpectedGuests != 25 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Budget != 1200.5 || ev.Time != "18:30" {
		t.Fatalf("unexpected event fields: %+v", ev)
	}
	if !ev.Date.Equal(time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", ev.Date)
	}
}

func TestDecodeEventEntityBadDate(t *testing.T) {
	data := []byte(`{"PartitionKey":"u","RowKey":"e","Date":"next tuesday"}`)
	if _, err := decodeEventEntity(data); err == nil {
		t.Fatal("expected malformed date to fail fast")
	}
}

func TestDecodeRSVPEntity(t *testing.T) {
	data := []byte(`{
		"PartitionKey": "evt-1",
		"RowKey": "rsvp-1",
		"InvitationId": "inv-1",
		"GuestName": "Ada",
		"GuestEmail": "ada@example.com",
		"Status": "yes",
		"RespondedAt": "2025-08-02T09:00:00Z",
		"CreatedAt": "2025-08-02T09:00:00Z"
	}`)
	r, err := decodeRSVPEntity(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.EventID != "evt-1" || r.InvitationID != "inv-1" || r.Status != domain.RSVPYes {
		t.Fatalf("unexpected rsvp: %+v", r)
	}
}

func TestDecodeCollaboratorEntityNormalizesRole(t *testing.T) {
	data := []byte(`{
		"PartitionKey": "evt-1",
		"RowKey": "col-1",
		"Email": "bayo@example.com",
		"Role": "view-only",
		"Status": "pending",
		"InvitedAt": "2025-08-02T09:00:00Z"
	}`)
	c, err := decodeCollaboratorEntity(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.Role != domain.RoleViewer {
		t.Fatalf("expected legacy role to normalize to viewer, got %q", c.Role)
	}
}

func TestDecodeCollaboratorEntityRejectsUnknownRole(t *testing.T) {
	data := []byte(`{"PartitionKey":"evt-1","RowKey":"col-1","Role":"owner"}`)
	if _, err := decodeCollaboratorEntity(data); err == nil {
		t.Fatal("expected unknown role to fail")
	}
}

func TestEncodeDecodeTaskEntityRoundTrip(t *testing.T) {
	task := domain.Task{
		ID:       "t1",
		EventID:  "evt-1",
		Title:    "Book venue",
		DueDate:  time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Priority: domain.PriorityHigh,
		Category: "logistics",
	}
	payload, err := encodeTaskEntity("user-1", task)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeTaskEntity(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != task {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, task)
	}
}

func TestEscapeFilterValue(t *testing.T) {
	if got := escapeFilterValue("o'brien"); got != "o''brien" {
		t.Fatalf("unexpected escape: %q", got)
	}
	if got := escapeFilterValue("plain"); got != "plain" {
		t.Fatalf("unexpected escape: %q", got)
	}
}
