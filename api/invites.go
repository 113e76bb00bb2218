package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
	"eventify-api/storage"
)

func getInvitations(store Storage, auth Authenticator) echo.HandlerFunc {
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
		invs, err := store.FetchInvitationsForEvent(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, invs)
	}
}

type invitationRequest struct {
	ExpiresAt string `json:"expiresAt"`
}

func postInvitation(store Storage, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req invitationRequest
		if err := decodeBody(c, &req); err != nil && !errors.Is(err, io.EOF) {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		var expires time.Time
		if req.ExpiresAt != "" {
			expires, err = parseDate(req.ExpiresAt)
			if err != nil {
				return c.String(http.StatusBadRequest, "invalid expiry")
			}
		}
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}
		inv, err := store.GenerateInvitationCode(ctx, userID, eventID, expires)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, inv)
	}
}

func deactivateInvitation(store Storage, auth Authenticator) echo.HandlerFunc {
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
		if err := store.DeactivateInvitation(ctx, eventID, c.Param("invitationId")); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func findInvitation(invs []domain.Invitation, invitationID string) (domain.Invitation, bool) {
	for _, inv := range invs {
		if inv.ID == invitationID {
			return inv, true
		}
	}
	return domain.Invitation{}, false
}

func getShareLinks(store Storage, auth Authenticator, cfg Config) echo.HandlerFunc {
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
		invs, err := store.FetchInvitationsForEvent(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		inv, ok := findInvitation(invs, c.Param("invitationId"))
		if !ok {
			return c.String(http.StatusNotFound, "not found")
		}
		return c.JSON(http.StatusOK, domain.BuildShareLinks(cfg.PublicBaseURL, ev, inv.Code))
	}
}

type shareRequest struct {
	Channel    string   `json:"channel"`
	Recipients []string `json:"recipients"`
}

// postShareMessages queues one share dispatch per recipient. The queue
// write happens off the request path; a saturated pool falls back to an
// inline enqueue so no request is dropped.
func postShareMessages(store Storage, auth Authenticator, cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		var req shareRequest
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if req.Channel != domain.ShareWhatsApp && req.Channel != domain.ShareEmail {
			return c.String(http.StatusBadRequest, "unknown channel")
		}
		if len(req.Recipients) == 0 {
			return c.String(http.StatusBadRequest, "recipients are required")
		}
		eventID := c.Param("id")
		ev, err := store.FetchEvent(ctx, userID, eventID)
		if err != nil {
			return storeError(c, err)
		}
		invs, err := store.FetchInvitationsForEvent(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		inv, ok := findInvitation(invs, c.Param("invitationId"))
		if !ok {
			return c.String(http.StatusNotFound, "not found")
		}
		links := domain.BuildShareLinks(cfg.PublicBaseURL, ev, inv.Code)

		msgs := make([]domain.ShareMessage, 0, len(req.Recipients))
		for _, recipient := range req.Recipients {
			recipient = strings.TrimSpace(recipient)
			if recipient == "" {
				return c.String(http.StatusBadRequest, "empty recipient")
			}
			msgs = append(msgs, domain.ShareMessage{
				Channel:   req.Channel,
				Recipient: recipient,
				Subject:   "Invitation: " + ev.Name,
				Body:      "You're invited to " + ev.Name + "! RSVP here: " + links.URL,
				Link:      links.URL,
			})
		}

		if !tryEnqueueShareJob(shareJob{userID: userID, msgs: msgs}) {
			if err := store.EnqueueShareMessages(ctx, userID, msgs); err != nil {
				return storeError(c, err)
			}
		}
		return c.JSON(http.StatusAccepted, map[string]int{"queued": len(msgs)})
	}
}

// publicInvitationResponse is the guest-facing view of an invitation:
// enough to render the RSVP page, nothing owner-only.
type publicInvitationResponse struct {
	Code      string    `json:"code"`
	EventName string    `json:"eventName"`
	EventDate time.Time `json:"eventDate"`
	EventTime string    `json:"eventTime,omitempty"`
	Venue     string    `json:"venue,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

func resolveInvitation(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		inv, err := store.FetchInvitationByCode(ctx, c.Param("code"))
		if err != nil {
			return storeError(c, err)
		}
		if !inv.Open(time.Now()) {
			return c.String(http.StatusGone, "invitation is closed")
		}
		ev, err := store.FetchEvent(ctx, inv.OwnerID, inv.EventID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, publicInvitationResponse{
			Code:      inv.Code,
			EventName: ev.Name,
			EventDate: ev.Date,
			EventTime: ev.Time,
			Venue:     ev.Venue,
			ExpiresAt: inv.ExpiresAt,
		})
	}
}

type rsvpSubmission struct {
	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	Status     string `json:"status"`
}

// submitRSVP handles a guest response on the public surface. A
// normalized guest name guards against double submissions per
// invitation; the guard entry is rolled back if the insert fails so
// the guest can retry.
func submitRSVP(store Storage, feed Feed, guard SubmissionGuard, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		inv, err := store.FetchInvitationByCode(ctx, c.Param("code"))
		if err != nil {
			return storeError(c, err)
		}
		if !inv.Open(time.Now()) {
			return c.String(http.StatusGone, "invitation is closed")
		}
		var req rsvpSubmission
		if err := decodeBody(c, &req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		name := strings.TrimSpace(req.GuestName)
		if name == "" {
			return c.String(http.StatusBadRequest, "guest name is required")
		}
		if !domain.ValidRSVPStatus(req.Status) {
			return c.String(http.StatusBadRequest, "invalid status")
		}

		guestKey := domain.NormalizeGuestName(name)
		added, err := guard.Add(ctx, inv.ID, guestKey)
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		if !added {
			return c.String(http.StatusConflict, "a response with this name was already recorded")
		}

		r := domain.RSVP{
			ID:           uuid.NewString(),
			EventID:      inv.EventID,
			InvitationID: inv.ID,
			GuestName:    name,
			GuestEmail:   strings.TrimSpace(req.GuestEmail),
			GuestPhone:   strings.TrimSpace(req.GuestPhone),
			Status:       req.Status,
			RespondedAt:  time.Now().UTC(),
			CreatedAt:    time.Now().UTC(),
		}
		if err := store.InsertRSVP(ctx, r); err != nil {
			if rerr := guard.Remove(ctx, inv.ID, guestKey); rerr != nil {
				logger.Errorf("submission guard rollback failed, err: %v, invitation: %s", rerr, inv.ID)
			}
			return storeError(c, err)
		}

		change := storage.RSVPChange{Kind: storage.ChangeInsert, EventID: inv.EventID, RSVPID: r.ID}
		if err := feed.Publish(ctx, change); err != nil {
			logger.Errorf("rsvp change publish failed, err: %v, event: %s", err, inv.EventID)
		}
		return c.JSON(http.StatusCreated, r)
	}
}
