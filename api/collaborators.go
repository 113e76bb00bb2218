package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"eventify-api/domain"
)

type collaboratorRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type collaboratorStatusRequest struct {
	Status string `json:"status"`
}

func getCollaborators(store Storage, auth Authenticator) echo.HandlerFunc {
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
		collabs, err := store.FetchCollaborators(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, collabs)
	}
}

// postCollaborator invites a collaborator. Roles are normalized on the
// way in; anything outside the canonical set is rejected.
func postCollaborator(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req collaboratorRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if req.Email == "" {
			return c.String(http.StatusBadRequest, "email is required")
		}
		role := domain.NormalizeRole(req.Role)
		if role == "" {
			return c.String(http.StatusBadRequest, "unknown role")
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		collab := domain.Collaborator{
			ID:        uuid.NewString(),
			EventID:   eventID,
			Email:     req.Email,
			Name:      req.Name,
			Role:      role,
			Status:    domain.CollabPending,
			InvitedAt: time.Now().UTC(),
		}
		if err := store.InsertCollaborator(ctx, collab); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, collab)
	}
}

func putCollaboratorStatus(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req collaboratorStatusRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if req.Status != domain.CollabAccepted && req.Status != domain.CollabDeclined {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		acceptedAt := ""
		if req.Status == domain.CollabAccepted {
			acceptedAt = time.Now().UTC().Format(time.RFC3339Nano)
		}
		if err := store.UpdateCollaboratorStatus(ctx, eventID, c.Param("collaboratorId"), req.Status, acceptedAt); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteCollaborator(store Storage, auth Authenticator) echo.HandlerFunc {
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
		if err := store.DeleteCollaborator(ctx, eventID, c.Param("collaboratorId")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
