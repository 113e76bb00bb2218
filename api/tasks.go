package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventify-api/domain"
)

type taskRequest struct {
	EventID     string `json:"eventId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

func (r taskRequest) validate() (time.Time, string) {
	if r.Title == "" {
		return time.Time{}, "title is required"
	}
	if r.Priority == "" || !domain.ValidPriority(r.Priority) {
		return time.Time{}, "priority must be low, medium or high"
	}
	var due time.Time
	if r.DueDate != "" {
		var err error
		due, err = parseDate(r.DueDate)
		if err != nil {
			return time.Time{}, "invalid due date"
		}
	}
	return due, ""
}

func getTasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		tasks, err := store.FetchTasksForUser(ctx, userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func getEventTasks(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		tasks, err := store.FetchTasksForEvent(ctx, userID, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func postTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req taskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		due, msg := req.validate()
		if msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		t := domain.Task{
			ID:          uuid.NewString(),
			EventID:     req.EventID,
			Title:       req.Title,
			Description: req.Description,
			DueDate:     due,
			Completed:   req.Completed,
			Priority:    req.Priority,
			Category:    req.Category,
		}
		if err := store.InsertTask(ctx, userID, t); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, t)
	}
}

func putTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req taskRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		due, msg := req.validate()
		if msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		t := domain.Task{
			ID:          c.Param("taskId"),
			EventID:     req.EventID,
			Title:       req.Title,
			Description: req.Description,
			DueDate:     due,
			Completed:   req.Completed,
			Priority:    req.Priority,
			Category:    req.Category,
		}
		if err := store.UpdateTask(ctx, userID, t); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, t)
	}
}

func deleteTask(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteTask(ctx, userID, c.Param("taskId")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
