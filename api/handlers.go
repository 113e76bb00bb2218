package api

import (
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
	"eventify-api/storage"
)

const requestBodyMaxSize = 64 * 1024 // 64 KiB

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, feed Feed, auth Authenticator, guard SubmissionGuard, cfg Config, logger *log.Logger) {
	e.GET("/healthz", healthz())

	e.GET("/api/events", getEvents(store, auth))
	e.POST("/api/events", postEvent(store, auth))
	e.GET("/api/events/:id", getEvent(store, auth))
	e.PUT("/api/events/:id", putEvent(store, auth))
	e.DELETE("/api/events/:id", deleteEvent(store, auth))
	e.GET("/api/events/:id/progress", getProgress(store, auth, logger))

	e.GET("/api/tasks", getTasks(store, auth))
	e.GET("/api/events/:id/tasks", getEventTasks(store, auth))
	e.POST("/api/tasks", postTask(store, auth))
	e.PUT("/api/tasks/:taskId", putTask(store, auth))
	e.DELETE("/api/tasks/:taskId", deleteTask(store, auth))

	e.GET("/api/events/:id/rsvps", getRSVPs(store, auth, logger))
	e.GET("/api/events/:id/rsvps/statistics", getRSVPStatistics(store, auth))
	e.GET("/api/events/:id/rsvps/stream", streamRSVPs(store, feed, auth, logger))

	e.GET("/api/events/:id/invitations", getInvitations(store, auth))
	e.POST("/api/events/:id/invitations", postInvitation(store, auth))
	e.DELETE("/api/events/:id/invitations/:invitationId", deactivateInvitation(store, auth))
	e.GET("/api/events/:id/invitations/:invitationId/share", getShareLinks(store, auth, cfg))
	e.POST("/api/events/:id/invitations/:invitationId/share", postShareMessages(store, auth, cfg))

	e.GET("/api/vendors", getVendors(store, auth))
	e.POST("/api/vendors", postVendor(store, auth))
	e.PUT("/api/vendors/:vendorId", putVendor(store, auth))
	e.DELETE("/api/vendors/:vendorId", deleteVendor(store, auth))

	e.GET("/api/events/:id/budget", getBudget(store, auth))
	e.POST("/api/events/:id/budget", postBudgetItem(store, auth))
	e.PUT("/api/events/:id/budget/:itemId", putBudgetItem(store, auth))
	e.DELETE("/api/events/:id/budget/:itemId", deleteBudgetItem(store, auth))

	e.GET("/api/events/:id/collaborators", getCollaborators(store, auth))
	e.POST("/api/events/:id/collaborators", postCollaborator(store, auth))
	e.PUT("/api/events/:id/collaborators/:collaboratorId/status", putCollaboratorStatus(store, auth))
	e.DELETE("/api/events/:id/collaborators/:collaboratorId", deleteCollaborator(store, auth))

	e.GET("/public/invitations/:code", resolveInvitation(store))
	e.POST("/public/invitations/:code/rsvps", submitRSVP(store, feed, guard, logger))

	initShareSender(store, logger)
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func decodeBody(c echo.Context, out any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// storeError maps gateway failures onto responses: missing rows are a
// terminal 404, everything else is a logged 500. Ready screens keep
// their state; nothing here triggers a retry.
func storeError(c echo.Context, err error) error {
	if storage.IsNotFound(err) {
		return c.String(http.StatusNotFound, "not found")
	}
	c.Logger().Error(err)
	return c.String(http.StatusInternalServerError, err.Error())
}

type eventRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Venue          string  `json:"venue"`
	ExpectedGuests int     `json:"expectedGuests"`
	Budget         float64 `json:"budget"`
}

func (r eventRequest) validate() (time.Time, string) {
	if r.Name == "" {
		return time.Time{}, "name is required"
	}
	if r.Date == "" {
		return time.Time{}, "date is required"
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return time.Time{}, "invalid date"
	}
	if r.ExpectedGuests < 0 {
		return time.Time{}, "expected guests must not be negative"
	}
	if r.Budget < 0 {
		return time.Time{}, "budget must not be negative"
	}
	return date, ""
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func getEvents(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		events, err := store.FetchEventsForUser(ctx, userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, events)
	}
}

func getEvent(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		ev, err := store.FetchEvent(ctx, userID, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, ev)
	}
}

func postEvent(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req eventRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		date, msg := req.validate()
		if msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		ev := domain.Event{
			ID:             uuid.NewString(),
			Name:           req.Name,
			Description:    req.Description,
			Date:           date,
			Time:           req.Time,
			Venue:          req.Venue,
			ExpectedGuests: req.ExpectedGuests,
			Budget:         req.Budget,
			CreatedAt:      time.Now().UTC(),
		}
		if err := store.InsertEvent(ctx, userID, ev); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, ev)
	}
}

func putEvent(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req eventRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		date, msg := req.validate()
		if msg != "" {
			return c.String(http.StatusBadRequest, msg)
		}
		current, err := store.FetchEvent(ctx, userID, c.Param("id"))
		if err != nil {
			return storeError(c, err)
		}
		ev := domain.Event{
			ID:             current.ID,
			Name:           req.Name,
			Description:    req.Description,
			Date:           date,
			Time:           req.Time,
			Venue:          req.Venue,
			ExpectedGuests: req.ExpectedGuests,
			Budget:         req.Budget,
			CreatedAt:      current.CreatedAt,
		}
		if err := store.UpdateEvent(ctx, userID, ev); err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, ev)
	}
}

func deleteEvent(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		if err := store.DeleteEvent(ctx, userID, c.Param("id")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// getProgress aggregates the readiness figures. A failed task or
// statistics fetch degrades to a zero contribution instead of failing
// the whole request; only a missing event is an error.
func getProgress(store Storage, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		eventID := c.Param("id")
		ev, err := store.FetchEvent(ctx, userID, eventID)
		if err != nil {
			return storeError(c, err)
		}
		tasks, err := store.FetchTasksForEvent(ctx, userID, eventID)
		if err != nil {
			logger.WithFields(log.Fields{"event_id": eventID}).Warnf("task fetch failed, using empty list: %v", err)
			tasks = nil
		}
		stats, err := store.FetchRSVPStatistics(ctx, eventID)
		if err != nil {
			logger.WithFields(log.Fields{"event_id": eventID}).Warnf("statistics fetch failed, using zero counts: %v", err)
			stats = domain.RSVPStatistics{}
		}
		return c.JSON(http.StatusOK, domain.AggregateProgress(ev, tasks, stats, time.Now()))
	}
}
