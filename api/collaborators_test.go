package api

import (
	"net/http"
	"testing"

	"github.com/bytedance/sonic"

	"eventify-api/domain"
)

func TestPostCollaboratorNormalizesRole(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	body := `{"email":"ada@example.com","name":"Ada","role":"view-only"}`
	c, rec := newTestContext(http.MethodPost, "/api/events/e1/collaborators", body)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	if err := postCollaborator(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var collab domain.Collaborator
	if err := sonic.Unmarshal(rec.Body.Bytes(), &collab); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if collab.Role != domain.RoleViewer {
		t.Fatalf("expected legacy role mapped to viewer, got %q", collab.Role)
	}
	if collab.Status != domain.CollabPending {
		t.Fatalf("expected pending status, got %q", collab.Status)
	}
}

func TestPostCollaboratorRejectsUnknownRole(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	body := `{"email":"ada@example.com","role":"owner"}`
	c, rec := newTestContext(http.MethodPost, "/api/events/e1/collaborators", body)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	if err := postCollaborator(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
}

func TestPutCollaboratorStatus(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	body := `{"status":"accepted"}`
	c, rec := newTestContext(http.MethodPut, "/api/events/e1/collaborators/c1/status", body)
	c.SetParamNames("id", "collaboratorId")
	c.SetParamValues("e1", "c1")
	if err := putCollaboratorStatus(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 got %d", rec.Code)
	}
	if len(store.statusCalls) != 1 || store.statusCalls[0] != "c1:accepted" {
		t.Fatalf("unexpected status calls: %#v", store.statusCalls)
	}
}

func TestPutCollaboratorStatusRejectsPending(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	body := `{"status":"pending"}`
	c, rec := newTestContext(http.MethodPut, "/api/events/e1/collaborators/c1/status", body)
	c.SetParamNames("id", "collaboratorId")
	c.SetParamValues("e1", "c1")
	if err := putCollaboratorStatus(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
}
