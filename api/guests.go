package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
	"eventify-api/livesync"
)

type guestsResponse struct {
	Rows       []domain.RSVP         `json:"rows"`
	Statistics domain.RSVPStatistics `json:"statistics"`
}

// getRSVPs serves the owner's guest list, optionally narrowed with the
// q and status query parameters. Filtering happens after the fetch;
// statistics always describe the full set.
func getRSVPs(store Storage, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newGuestRequestMetrics(ctx, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		userID, authErr := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = c.String(http.StatusUnauthorized, authErr.Error())
			return err
		}

		eventID := c.Param("id")
		query := c.QueryParam("q")
		status := c.QueryParam("status")
		if status != "" && status != livesync.StatusAll && !domain.ValidRSVPStatus(status) {
			metrics.SetErrorStage("invalid_status_filter")
			err = c.String(http.StatusBadRequest, "invalid status filter")
			return err
		}

		fetchStart := time.Now()
		if _, ferr := store.FetchEvent(ctx, userID, eventID); ferr != nil {
			metrics.ObserveFetch(time.Since(fetchStart))
			metrics.SetErrorStage("event_lookup")
			err = storeError(c, ferr)
			return err
		}
		rows, rowsErr := store.FetchRSVPsForEvent(ctx, eventID)
		if rowsErr != nil {
			metrics.ObserveFetch(time.Since(fetchStart))
			metrics.SetErrorStage("storage")
			err = storeError(c, rowsErr)
			return err
		}
		stats, statsErr := store.FetchRSVPStatistics(ctx, eventID)
		metrics.ObserveFetch(time.Since(fetchStart))
		if statsErr != nil {
			metrics.SetErrorStage("storage")
			err = storeError(c, statsErr)
			return err
		}

		snap := livesync.Snapshot{Rows: rows, Statistics: stats}
		if query != "" || (status != "" && status != livesync.StatusAll) {
			metrics.SetFilterApplied(true)
			snap = livesync.Filter(snap, query, status)
		}
		metrics.SetRowsReturned(len(snap.Rows))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, guestsResponse{Rows: snap.Rows, Statistics: snap.Statistics})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getRSVPStatistics(store Storage, auth Authenticator) echo.HandlerFunc {
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
		stats, err := store.FetchRSVPStatistics(ctx, eventID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
