package domain

import "time"

// Invitation is a shareable RSVP link for one event. The code is the
// opaque token embedded in the public URL.
type Invitation struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	OwnerID   string    `json:"ownerId,omitempty"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Open reports whether the invitation accepts submissions at the given
// time: it must be active and not past its expiry (a zero expiry never
// expires).
func (i Invitation) Open(now time.Time) bool {
	if !i.Active {
		return false
	}
	if i.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(i.ExpiresAt)
}
