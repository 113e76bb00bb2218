package api

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName        = "eventify-api/api"
	guestsEventName   = "guests.request"
	guestsEventDomain = "eventify"
	guestsRoute       = "/api/events/:id/rsvps"
)

// guestRequestMetrics instruments one guest-list request: stage timings
// land on both an otel span and a structured log entry.
type guestRequestMetrics struct {
	logger         *log.Logger
	span           trace.Span
	start          time.Time
	authDuration   time.Duration
	fetchDuration  time.Duration
	encodeDuration time.Duration
	rowsReturned   int
	filterApplied  bool
	errorStage     string
}

func newGuestRequestMetrics(ctx context.Context, logger *log.Logger) (*guestRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, guestsEventName)
	return &guestRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *guestRequestMetrics) ObserveAuth(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.authDuration = duration
}

func (m *guestRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *guestRequestMetrics) ObserveEncode(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.encodeDuration = duration
}

func (m *guestRequestMetrics) SetRowsReturned(count int) {
	if count < 0 {
		count = 0
	}
	m.rowsReturned = count
}

func (m *guestRequestMetrics) SetFilterApplied(applied bool) {
	m.filterApplied = applied
}

func (m *guestRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

func (m *guestRequestMetrics) Log(status int, err error) {
	if m == nil {
		return
	}

	totalMs := durationToMillis(time.Since(m.start))
	attrs := map[string]any{
		"http.route":                     guestsRoute,
		"http.status_code":               status,
		"eventify.guests.total_ms":       totalMs,
		"eventify.guests.rows_returned":  m.rowsReturned,
		"eventify.guests.filter_applied": m.filterApplied,
	}
	if m.authDuration > 0 {
		attrs["eventify.guests.auth_ms"] = durationToMillis(m.authDuration)
	}
	if m.fetchDuration > 0 {
		attrs["eventify.guests.fetch_ms"] = durationToMillis(m.fetchDuration)
	}
	if m.encodeDuration > 0 {
		attrs["eventify.guests.encode_ms"] = durationToMillis(m.encodeDuration)
	}
	if m.errorStage != "" {
		attrs["eventify.guests.error_stage"] = m.errorStage
	}

	if m.span != nil {
		m.span.SetAttributes(
			attribute.String("http.route", guestsRoute),
			attribute.Int("http.status_code", status),
			attribute.Float64("eventify.guests.total_ms", totalMs),
			attribute.Int("eventify.guests.rows_returned", m.rowsReturned),
			attribute.Bool("eventify.guests.filter_applied", m.filterApplied),
		)
		if m.errorStage != "" {
			m.span.SetAttributes(attribute.String("eventify.guests.error_stage", m.errorStage))
		}
		if err != nil {
			m.span.RecordError(err)
			m.span.SetStatus(codes.Error, err.Error())
		} else {
			m.span.SetStatus(codes.Ok, "")
		}
		m.span.End()
	}

	if m.logger == nil {
		return
	}

	severity := "INFO"
	entry := m.logger.WithFields(log.Fields{
		"event.name":    guestsEventName,
		"event.domain":  guestsEventDomain,
		"attributes":    attrs,
		"severity_text": severity,
	})
	if err != nil {
		entry = entry.WithField("error", err.Error())
	}
	entry.Info("observability.event")
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
