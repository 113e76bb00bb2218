package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventify-api/domain"
)

type budgetResponse struct {
	Items   []domain.BudgetItem  `json:"items"`
	Summary domain.BudgetSummary `json:"summary"`
}

type budgetItemRequest struct {
	Category  string  `json:"category"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
}

func (r budgetItemRequest) validate() string {
	if r.Category == "" {
		return "category is required"
	}
	if r.Allocated < 0 {
		return "allocated must not be negative"
	}
	if r.Spent < 0 {
		return "spent must not be negative"
	}
	return ""
}

// getBudget returns the item list with its summary. Remaining can go
// negative; over-budget is reported as-is.
func getBudget(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		items, err := store.FetchBudgetItems(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, budgetResponse{Items: items, Summary: domain.SummarizeBudget(items)})
	}
}

func postBudgetItem(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req budgetItemRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if msg := req.validate(); msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		it := domain.BudgetItem{
			ID:        uuid.NewString(),
			EventID:   eventID,
			Category:  req.Category,
			Allocated: req.Allocated,
			Spent:     req.Spent,
			SyncState: domain.ItemConfirmed,
		}
		if err := store.InsertBudgetItem(ctx, it); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, it)
	}
}

func putBudgetItem(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req budgetItemRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if msg := req.validate(); msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		it := domain.BudgetItem{
			ID:        c.Param("itemId"),
			EventID:   eventID,
			Category:  req.Category,
			Allocated: req.Allocated,
			Spent:     req.Spent,
			SyncState: domain.ItemConfirmed,
		}
		if err := store.UpdateBudgetItem(ctx, it); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, it)
	}
}

func deleteBudgetItem(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		if err := store.DeleteBudgetItem(ctx, eventID, c.Param("itemId")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
