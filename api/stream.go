package api

import (
	"context"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"eventify-api/domain"
	"eventify-api/livesync"
	"eventify-api/storage"
)

// feedAdapter presents the RSVP change feed in the shape the view model
// subscribes to.
type feedAdapter struct {
	feed Feed
}

func (a feedAdapter) Subscribe(ctx context.Context, eventID string, onChange func(livesync.Change)) (func(), error) {
	return a.feed.Subscribe(ctx, eventID, func(ch storage.RSVPChange) {
		onChange(livesync.Change{Kind: ch.Kind, EventID: ch.EventID, RSVPID: ch.RSVPID})
	})
}

type streamFrame struct {
	State      string                `json:"state"`
	Rows       []domain.RSVP         `json:"rows"`
	Statistics domain.RSVPStatistics `json:"statistics"`
}

// streamRSVPs serves the guest list over SSE. Each connection owns a
// view model mounted on the event; a frame goes out on connect and
// after every push-triggered refresh. EventSource cannot set headers,
// so a token query parameter stands in for the Authorization header.
func streamRSVPs(store Storage, feed Feed, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if token := c.QueryParam("token"); authHeader == "" && token != "" {
			authHeader = "Bearer " + token
		}
		userID, err := auth.UserIDFromAuthHeader(authHeader)
		if err != nil {
			return c.String(http.StatusUnauthorized, err.Error())
		}
		ctx := c.Request().Context()
		eventID := c.Param("id")
		if _, err := store.FetchEvent(ctx, userID, eventID); err != nil {
			return storeError(c, err)
		}

		signal := make(chan struct{}, 1)
		vm := livesync.New(store, feedAdapter{feed: feed}, func() {
			select {
			case signal <- struct{}{}:
			default:
			}
		}, logger)
		defer vm.Close()

		if err := vm.Mount(ctx, eventID); err != nil {
			return storeError(c, err)
		}

		c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
		c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
		c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
		c.Response().Header().Set("X-Accel-Buffering", "no")
		flusher, ok := c.Response().Writer.(http.Flusher)
		if !ok {
			return c.String(http.StatusInternalServerError, "stream unsupported")
		}

		for {
			snap, state, _ := vm.Snapshot()
			if snap.Rows == nil {
				snap.Rows = []domain.RSVP{}
			}
			data, err := sonic.ConfigStd.Marshal(streamFrame{
				State:      state.String(),
				Rows:       snap.Rows,
				Statistics: snap.Statistics,
			})
			if err != nil {
				c.Logger().Error(err)
				return err
			}
			if _, err := c.Response().Write([]byte("data: ")); err != nil {
				c.Logger().Error(err)
				return err
			}
			if _, err := c.Response().Write(data); err != nil {
				c.Logger().Error(err)
				return err
			}
			if _, err := c.Response().Write([]byte("\n\n")); err != nil {
				c.Logger().Error(err)
				return err
			}
			flusher.Flush()
			select {
			case <-ctx.Done():
				return nil
			case <-signal:
				continue
			}
		}
	}
}
