package api

import (
	"net/http"
	"testing"

	"github.com/bytedance/sonic"

	"eventify-api/domain"
)

func TestGetBudgetIncludesSummary(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}
	store.budget = []domain.BudgetItem{
		{ID: "b1", EventID: "e1", Category: "catering", Allocated: 1000, Spent: 400},
		{ID: "b2", EventID: "e1", Category: "venue", Allocated: 500, Spent: 700},
	}

	c, rec := newTestContext(http.MethodGet, "/api/events/e1/budget", "")
	c.SetParamNames("id")
	c.SetParamValues("e1")
	if err := getBudget(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", rec.Code)
	}
	var resp budgetResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Summary.Allocated != 1500 || resp.Summary.Spent != 1100 {
		t.Fatalf("unexpected summary: %#v", resp.Summary)
	}
	// Over-allocated categories still net out; remaining may go negative
	// on other inputs and is reported as-is.
	if resp.Summary.Remaining != 400 {
		t.Fatalf("unexpected remaining: %v", resp.Summary.Remaining)
	}
}

func TestPostBudgetItem(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	body := `{"category":"catering","allocated":1000,"spent":0}`
	c, rec := newTestContext(http.MethodPost, "/api/events/e1/budget", body)
	c.SetParamNames("id")
	c.SetParamValues("e1")
	if err := postBudgetItem(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.budget) != 1 || store.budget[0].SyncState != domain.ItemConfirmed {
		t.Fatalf("unexpected items: %#v", store.budget)
	}
}

func TestPostBudgetItemValidation(t *testing.T) {
	store := newMockStore()
	store.events["e1"] = domain.Event{ID: "e1"}

	cases := []struct {
		name string
		body string
	}{
		{"missing category", `{"allocated":10}`},
		{"negative allocated", `{"category":"x","allocated":-1}`},
		{"negative spent", `{"category":"x","spent":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/events/e1/budget", tc.body)
			c.SetParamNames("id")
			c.SetParamValues("e1")
			if err := postBudgetItem(store, mockAuth{})(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400 got %d", rec.Code)
			}
		})
	}
}

func TestPostVendorValidatesPaymentStatus(t *testing.T) {
	body := `{"name":"DJ Max","serviceType":"music","paymentStatus":"overdue"}`
	c, rec := newTestContext(http.MethodPost, "/api/vendors", body)
	if err := postVendor(newMockStore(), mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
}

func TestPostVendor(t *testing.T) {
	store := newMockStore()
	body := `{"name":"DJ Max","serviceType":"music","amount":300,"paymentStatus":"pending"}`
	c, rec := newTestContext(http.MethodPost, "/api/vendors", body)
	if err := postVendor(store, mockAuth{})(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.vendors) != 1 || store.vendors[0].Name != "DJ Max" {
		t.Fatalf("unexpected vendors: %#v", store.vendors)
	}
}
