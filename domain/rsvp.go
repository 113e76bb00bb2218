package domain

import (
	"fmt"
	"strings"
	"time"
)

// RSVP statuses a guest may answer with.
const (
	RSVPYes   = "yes"
	RSVPNo    = "no"
	RSVPMaybe = "maybe"
)

// RSVP is one guest response submitted through an invitation link.
// Owners read and aggregate these; they never edit them.
type RSVP struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitationId"`
	EventID      string    `json:"eventId"`
	GuestName    string    `json:"guestName"`
	GuestEmail   string    `json:"guestEmail,omitempty"`
	GuestPhone   string    `json:"guestPhone,omitempty"`
	Status       string    `json:"status"`
	RespondedAt  time.Time `json:"respondedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidRSVPStatus reports whether s is one of yes, no or maybe.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPYes, RSVPNo, RSVPMaybe:
		return true
	}
	return false
}

// RSVPStatistics is the aggregate returned by the statistics procedure.
// It is fetched from the store, never derived client-side from the row set.
type RSVPStatistics struct {
	Total int `json:"total"`
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// Validate checks the invariant total = yes + no + maybe with all counts
// non-negative.
func (s RSVPStatistics) Validate() error {
	if s.Total < 0 || s.Yes < 0 || s.No < 0 || s.Maybe < 0 {
		return fmt.Errorf("rsvp statistics contain negative count: %+v", s)
	}
	if s.Total != s.Yes+s.No+s.Maybe {
		return fmt.Errorf("rsvp statistics do not add up: total=%d yes=%d no=%d maybe=%d", s.Total, s.Yes, s.No, s.Maybe)
	}
	return nil
}

// Count increments the bucket for the given status. Unknown statuses are
// ignored so a bad row cannot corrupt the totals.
func (s *RSVPStatistics) Count(status string) {
	switch status {
	case RSVPYes:
		s.Yes++
	case RSVPNo:
		s.No++
	case RSVPMaybe:
		s.Maybe++
	default:
		return
	}
	s.Total++
}

// NormalizeGuestName trims and lowercases a guest name for duplicate
// submission checks.
func NormalizeGuestName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
